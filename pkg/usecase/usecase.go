package usecase

import (
	"time"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
	"github.com/PrashantJha183/Feedback-backend/pkg/service/markup"
	"github.com/PrashantJha183/Feedback-backend/pkg/service/password"
	"github.com/PrashantJha183/Feedback-backend/pkg/service/report"
)

// ReportConfig controls the exported feedback report layout
type ReportConfig struct {
	LinesPerPage int
	TitlePrefix  string
}

const (
	DefaultLinesPerPage = 20
	DefaultTitlePrefix  = "Feedback Report for Employee ID: "
)

// DefaultReportConfig returns the layout used when none is configured
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		LinesPerPage: DefaultLinesPerPage,
		TitlePrefix:  DefaultTitlePrefix,
	}
}

type UseCases struct {
	repo         interfaces.Repository
	hasher       interfaces.PasswordHasher
	markup       interfaces.MarkupRenderer
	renderer     interfaces.ReportRenderer
	notifier     interfaces.Notifier
	reportConfig ReportConfig
	clock        func() time.Time

	User            *UserUseCase
	Notification    *NotificationUseCase
	FeedbackRequest *FeedbackRequestUseCase
	Feedback        *FeedbackUseCase
	Dashboard       *DashboardUseCase
}

type Option func(*UseCases)

func WithPasswordHasher(hasher interfaces.PasswordHasher) Option {
	return func(uc *UseCases) {
		uc.hasher = hasher
	}
}

func WithMarkupRenderer(r interfaces.MarkupRenderer) Option {
	return func(uc *UseCases) {
		uc.markup = r
	}
}

func WithReportRenderer(r interfaces.ReportRenderer) Option {
	return func(uc *UseCases) {
		uc.renderer = r
	}
}

// WithNotifier enables pushing notifications outside of the application
func WithNotifier(n interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

func WithReportConfig(cfg ReportConfig) Option {
	return func(uc *UseCases) {
		uc.reportConfig = cfg
	}
}

// WithClock replaces time.Now for CreatedAt timestamps
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:         repo,
		reportConfig: DefaultReportConfig(),
		clock:        time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.hasher == nil {
		uc.hasher = password.New()
	}
	if uc.markup == nil {
		uc.markup = markup.NewMarkdown()
	}
	if uc.renderer == nil {
		uc.renderer = report.NewPDF()
	}
	if uc.reportConfig.LinesPerPage <= 0 {
		uc.reportConfig.LinesPerPage = DefaultLinesPerPage
	}
	if uc.reportConfig.TitlePrefix == "" {
		uc.reportConfig.TitlePrefix = DefaultTitlePrefix
	}

	now := func() time.Time { return uc.clock().UTC() }

	uc.User = NewUserUseCase(repo, uc.hasher)
	uc.Notification = NewNotificationUseCase(repo, uc.notifier, now)
	uc.FeedbackRequest = NewFeedbackRequestUseCase(repo, uc.Notification, now)
	uc.Feedback = NewFeedbackUseCase(repo, uc.Notification, uc.markup, uc.renderer, uc.reportConfig, now)
	uc.Dashboard = NewDashboardUseCase(repo)

	return uc
}
