package notifications

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Pinoccchio/LawbotWeb-sub002/allocation"
	"github.com/Pinoccchio/LawbotWeb-sub002/databases"
	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

// Service fans an AssignmentChanged event out to the collaborators that
// care: a persisted notification for the officer's inbox, a best-effort
// email, and the live websocket feed. It implements allocation.Notifier.
// Nothing here can fail the assignment itself; the allocator only logs the
// returned error.
type Service struct {
	NDB databases.NotificationDatabase
	ODB databases.OfficerDatabase
	Hub *Hub
}

// AssignmentChanged persists and fans out one event
func (s *Service) AssignmentChanged(ctx context.Context, event allocation.AssignmentChangedEvent) error {
	message := fmt.Sprintf("You have been assigned case %s", event.CaseID)
	if event.OldOfficerID != "" {
		message = fmt.Sprintf("Case %s has been reassigned to you", event.CaseID)
	}

	var errs []error
	if s.NDB != nil {
		doc := bson.M{
			"_id": uuid.New().String(),
			"notification": models.NotificationDetails{
				RecipientID: event.NewOfficerID,
				CaseID:      event.CaseID,
				Event:       "assignment_changed",
				Message:     message,
				CreatedAt:   primitive.NewDateTimeFromTime(event.Timestamp),
			},
			"__v": 0,
		}
		if _, err := s.NDB.InsertOne(ctx, doc); err != nil {
			errs = append(errs, fmt.Errorf("store notification: %w", err))
		}
	}

	if err := s.emailOfficer(ctx, event.NewOfficerID, message); err != nil {
		errs = append(errs, err)
	}

	if s.Hub != nil {
		s.Hub.Broadcast("assignment_changed", event)
	}

	return errors.Join(errs...)
}

func (s *Service) emailOfficer(ctx context.Context, officerID, message string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" || s.ODB == nil {
		return nil
	}

	officer, err := s.ODB.FindOne(ctx, bson.M{"_id": officerID})
	if err != nil {
		return fmt.Errorf("lookup officer for email: %w", err)
	}
	if officer.Details.Email == "" {
		return nil
	}

	from := mail.NewEmail("Cybercrime Case Portal", os.Getenv("NOTIFY_FROM_EMAIL"))
	to := mail.NewEmail(officer.Details.Name, officer.Details.Email)
	content := mail.NewSingleEmail(from, "New case assignment", to, message, message)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(content)
	if err != nil {
		zap.S().Errorw("failed to send assignment email", "error", err, "to", officer.Details.Email)
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "to", officer.Details.Email)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	zap.S().Infow("assignment email sent", "to", officer.Details.Email)
	return nil
}
