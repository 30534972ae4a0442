package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lumoshop/lumoshop-api/internal/domain/entity"
	"github.com/lumoshop/lumoshop-api/internal/domain/repository"
	"github.com/lumoshop/lumoshop-api/pkg/apperror"
	"github.com/lumoshop/lumoshop-api/pkg/helpers"
	"github.com/lumoshop/lumoshop-api/pkg/mailer"
)

// UserService implements signup, credential login, profile and password
// management, and the admin operations (ban, delete, list, search).
type UserService struct {
	Repo         repository.UserRepository
	JWT          *helpers.JWTManager
	Notifier     Notifier
	Logger       *logrus.Logger
	AdminEmail   string
	GCS          *storage.Client
	GCSBucket    string
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, notifier Notifier, logger *logrus.Logger, adminEmail string) *UserService {
	return &UserService{
		Repo:       repo,
		JWT:        jwt,
		Notifier:   notifier,
		Logger:     logger,
		AdminEmail: adminEmail,
	}
}

type SignupInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Signup creates a credential identity. The plaintext password never
// leaves this method except as a bcrypt hash.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u := &entity.User{
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhotoURL:     entity.DefaultPhotoURL,
		Role:         entity.RoleUser,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if err == repository.ErrDuplicateEmail {
			return nil, apperror.BadRequest("email already exists")
		}
		return nil, apperror.Internal(err)
	}
	u.PasswordHash = ""
	s.Notifier.Send(ctx, u.Email, mailer.TemplateWelcome, map[string]any{"Name": u.FirstName})
	s.indexUser(ctx, u)
	return u, nil
}

// Login authenticates credentials and issues a session token. A banned
// or unknown account fails with the same not-found rejection, so a
// caller cannot probe which accounts exist.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Repo.GetByEmailWithPassword(ctx, NormalizeEmail(email))
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, "", time.Time{}, apperror.NotFound("user not found")
		}
		return nil, "", time.Time{}, apperror.Internal(err)
	}
	if u.IsBanned {
		return nil, "", time.Time{}, apperror.NotFound("user not found")
	}
	if u.PasswordHash == "" || !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, "", time.Time{}, apperror.Unauthorized("invalid credentials")
	}
	u.PasswordHash = ""

	token, exp, err := s.JWT.Issue(u.Email)
	if err != nil {
		return nil, "", time.Time{}, apperror.Internal(err)
	}
	return u, token, exp, nil
}

// IssueSession signs a bearer token for an already-authenticated
// identity (used after federation login).
func (s *UserService) IssueSession(u *entity.User) (string, time.Time, error) {
	token, exp, err := s.JWT.Issue(u.Email)
	if err != nil {
		return "", time.Time{}, apperror.Internal(err)
	}
	return token, exp, nil
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Internal(err)
	}
	return u, nil
}

type UpdateProfileInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// UpdateProfile mutates the caller's own identity. An email change
// re-checks uniqueness against every identity except the current one.
func (s *UserService) UpdateProfile(ctx context.Context, u *entity.User, in UpdateProfileInput) (*entity.User, error) {
	if in.Username != "" {
		u.Username = in.Username
	}
	if in.FirstName != "" {
		u.FirstName = in.FirstName
	}
	if in.LastName != "" {
		u.LastName = in.LastName
	}
	if in.Email != "" {
		email := NormalizeEmail(in.Email)
		if email != u.Email {
			existing, err := s.Repo.GetByEmail(ctx, email)
			if err != nil && err != repository.ErrNotFound {
				return nil, apperror.Internal(err)
			}
			if existing != nil && existing.ID != u.ID {
				return nil, apperror.BadRequest("email already exists")
			}
			u.Email = email
		}
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		switch err {
		case repository.ErrDuplicateEmail:
			return nil, apperror.BadRequest("email already exists")
		case repository.ErrNotFound:
			return nil, apperror.NotFound("user not found")
		default:
			return nil, apperror.Internal(err)
		}
	}
	s.indexUser(ctx, u)
	return u, nil
}

// ChangePassword verifies the old password before setting a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return apperror.NotFound("user not found")
		}
		return apperror.Internal(err)
	}
	withHash, err := s.Repo.GetByEmailWithPassword(ctx, u.Email)
	if err != nil {
		return apperror.Internal(err)
	}
	if withHash.PasswordHash == "" || !helpers.CheckPassword(withHash.PasswordHash, oldPassword) {
		return apperror.Unauthorized("invalid credentials")
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := s.Repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// UploadPhoto stores the avatar in GCS and persists the public URL.
func (s *UserService) UploadPhoto(ctx context.Context, u *entity.User, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apperror.Internal(errors.New("object storage is not configured"))
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", u.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", apperror.Internal(err)
	}
	u.PhotoURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", apperror.Internal(err)
	}
	s.indexUser(ctx, u)
	return url, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

// isReservedAdmin guards the one identity that can never be banned or
// deleted.
func (s *UserService) isReservedAdmin(u *entity.User) bool {
	return u.Email == NormalizeEmail(s.AdminEmail)
}

// ToggleBan flips the ban flag. Refused for the reserved admin before
// any store mutation.
func (s *UserService) ToggleBan(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Internal(err)
	}
	if s.isReservedAdmin(u) {
		return nil, apperror.BadRequest("unable to ban admin")
	}
	u.IsBanned = !u.IsBanned
	if err := s.Repo.SetBanned(ctx, u.ID, u.IsBanned); err != nil {
		return nil, apperror.Internal(err)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "banned": u.IsBanned}).Info("ban status updated")
	return u, nil
}

// DeleteUser removes an identity. Refused for the reserved admin.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return apperror.NotFound("user not found")
		}
		return apperror.Internal(err)
	}
	if s.isReservedAdmin(u) {
		return apperror.BadRequest("unable to delete admin")
	}
	if err := s.Repo.Delete(ctx, u.ID); err != nil {
		return apperror.Internal(err)
	}
	s.Logger.WithField("user_id", u.ID).Info("user deleted")
	return nil
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"role":       u.Role,
		"is_banned":  u.IsBanned,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

// SearchUsers performs a multi_match search on email and name fields.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "username", "first_name", "last_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperror.Internal(err)
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
