package mailer

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/lumoshop/lumoshop-api/pkg/helpers"
)

// QueueNotifier publishes EmailJobs to RabbitMQ for the email worker.
// Publishing is best-effort; a failure is logged and dropped.
type QueueNotifier struct {
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewQueueNotifier(pub *helpers.RabbitPublisher, logger *logrus.Logger) *QueueNotifier {
	return &QueueNotifier{Pub: pub, Logger: logger}
}

func (n *QueueNotifier) Send(ctx context.Context, to, template string, data map[string]any) {
	if n.Pub == nil {
		return
	}
	job := EmailJob{To: to, Template: template, Data: data}
	if err := n.Pub.PublishJSON(ctx, job); err != nil {
		n.Logger.WithError(err).WithFields(logrus.Fields{
			"to":       to,
			"template": template,
		}).Warn("email publish failed")
	}
}
