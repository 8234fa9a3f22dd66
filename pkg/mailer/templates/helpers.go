package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithSupportURL(url string) Option {
	return func(d *EmailData) { d.SupportURL = strings.TrimSpace(url) }
}

func WithCompany(name string) Option {
	return func(d *EmailData) { d.CompanyName = name }
}

// NewEmailData fills the recipient fields and applies opts.
func NewEmailData(appName, name, email string, opts ...Option) EmailData {
	d := EmailData{Name: name, Email: email, AppName: appName}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
