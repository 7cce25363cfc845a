package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/attendance"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/auth"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/chat"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/leave"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/project"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/update"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		BadRequest(w, "Google login is not configured", nil)

	// Users
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrManagerAccessRequired):
		BadRequest(w, "Referenced user is not a manager", nil)
	case errors.Is(err, user.ErrTeamLeadAccessRequired):
		BadRequest(w, "Referenced user is not a team lead", nil)
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Attendance
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "Already punched in today")
	case errors.Is(err, attendance.ErrNoOpenSession):
		Conflict(w, "No open session to punch out of")

	// Daily updates
	case errors.Is(err, update.ErrUpdateNotFound):
		NotFound(w, "Daily update not found")
	case errors.Is(err, update.ErrUpdateAlreadyReviewed):
		Conflict(w, "Daily update already reviewed")
	case errors.Is(err, update.ErrInvalidReviewAction):
		BadRequest(w, "Review action must be approve or reject", nil)

	// Projects and tasks
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, project.ErrNotAssignee):
		Forbidden(w, "Only the assignee or a manager can change this status")
	case errors.Is(err, project.ErrUnknownStatus):
		BadRequest(w, "Unknown status value", nil)

	// Leave
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)

	// Chat
	case errors.Is(err, chat.ErrRecipientNotFound):
		NotFound(w, "Recipient not found")
	case errors.Is(err, chat.ErrEmptyMessage):
		BadRequest(w, "Message must have text or a file", nil)

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
