// Package queue hands notifications to the email worker over RabbitMQ.
package queue

import (
	"context"
	"time"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	"github.com/oksasatya/go-ddd-task-manager/pkg/helpers"
	"github.com/oksasatya/go-ddd-task-manager/pkg/mailer"
	mailtpl "github.com/oksasatya/go-ddd-task-manager/pkg/mailer/templates"
)

const publishTimeout = 3 * time.Second

type WelcomeNotifier struct {
	Pub         helpers.JSONPublisher
	AppName     string
	CompanyName string
	SupportURL  string
}

func NewWelcomeNotifier(pub helpers.JSONPublisher, appName, companyName, supportURL string) *WelcomeNotifier {
	return &WelcomeNotifier{Pub: pub, AppName: appName, CompanyName: companyName, SupportURL: supportURL}
}

// NotifyWelcome enqueues the welcome email for u.
func (n *WelcomeNotifier) NotifyWelcome(ctx context.Context, u *entity.User) error {
	data := mailtpl.NewEmailData(n.AppName, u.Username, u.Email,
		mailtpl.WithTime(u.CreatedAt),
		mailtpl.WithCompany(n.CompanyName),
		mailtpl.WithSupportURL(n.SupportURL),
	)
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.ToMap(data),
	}
	c, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return n.Pub.PublishJSON(c, job)
}
