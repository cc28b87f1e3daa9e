package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PageFox/app/models"
	"github.com/ManuelReschke/PageFox/app/repository"
	"github.com/ManuelReschke/PageFox/internal/pkg/mail"
)

// expiringThresholdDays is how many days before expiry the warning fires.
const expiringThresholdDays = 5

// Result reports how many notifications one evaluation run actually created.
type Result struct {
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

// Notifier evaluates hosted projects against their configured duration and
// emits at most one notification per (owner, type, project). The uniqueness
// is enforced by the notification store, so running the evaluation twice, or
// concurrently, never duplicates a notice. An expired notice never replaces
// an earlier expiring one; owners keep both.
type Notifier struct {
	projects      repository.ProjectRepository
	notifications repository.NotificationRepository
}

// NewNotifier creates a lifecycle notifier backed by the given repositories.
func NewNotifier(projects repository.ProjectRepository, notifications repository.NotificationRepository) *Notifier {
	return &Notifier{
		projects:      projects,
		notifications: notifications,
	}
}

// EvaluateExpirations classifies every hosted project as of now and creates
// the missing notifications. The returned counts cover rows actually written
// in this run, so a second run right after reports zeros.
func (n *Notifier) EvaluateExpirations(ctx context.Context, now time.Time) (Result, error) {
	projects, err := n.projects.GetHosted()
	if err != nil {
		return Result{}, err
	}

	var result Result
	for i := range projects {
		project := &projects[i]
		daysLeft := project.DaysLeft(now)

		switch {
		case daysLeft <= 0:
			created, err := n.notifications.CreateIfAbsent(ctx, &models.Notification{
				UserID:    project.UserID,
				Type:      models.NotificationTypeExpired,
				Title:     "Page expired",
				Message:   fmt.Sprintf("Your page %q has expired and is no longer being served.", project.Name),
				RelatedID: project.ID,
			})
			if err != nil {
				return result, err
			}
			if created {
				result.Expired++
				log.Infof("[Lifecycle] project %d (%s) expired, owner %d notified", project.ID, project.Name, project.UserID)
				n.sendOwnerMail(project, "Your page has expired",
					fmt.Sprintf("<p>Your page <strong>%s</strong> has expired and is no longer being served.</p>", project.Name))
			}
		case daysLeft <= expiringThresholdDays:
			created, err := n.notifications.CreateIfAbsent(ctx, &models.Notification{
				UserID:    project.UserID,
				Type:      models.NotificationTypeExpiring,
				Title:     "Page expiring soon",
				Message:   fmt.Sprintf("Your page %q expires in %d day(s).", project.Name, daysLeft),
				RelatedID: project.ID,
			})
			if err != nil {
				return result, err
			}
			if created {
				result.Expiring++
				log.Infof("[Lifecycle] project %d (%s) expires in %d day(s), owner %d notified", project.ID, project.Name, daysLeft, project.UserID)
				n.sendOwnerMail(project, "Your page expires soon",
					fmt.Sprintf("<p>Your page <strong>%s</strong> expires in %d day(s).</p>", project.Name, daysLeft))
			}
		}
	}
	return result, nil
}

// sendOwnerMail emails the project owner on top of the in-app notification.
// Best effort: skipped when SMTP is not configured, failures only get logged.
func (n *Notifier) sendOwnerMail(project *models.Project, subject, body string) {
	if !mail.Enabled() || project.User.Email == "" {
		return
	}
	if err := mail.SendMail(project.User.Email, subject, body); err != nil {
		log.Warnf("[Lifecycle] email to owner %d failed: %v", project.UserID, err)
	}
}
