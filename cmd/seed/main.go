package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/teamtrackhq/teamtrack-backend-go/internal/config"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/attendance"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/chat"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/leave"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/project"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/update"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/database"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/repository/postgresql"
)

// seed fills an empty database with demo accounts and a few weeks of
// activity so the dashboards have something to show. Every account gets
// the same password, printed at the end.
func main() {
	employees := flag.Int("employees", 8, "number of employee accounts")
	days := flag.Int("days", 14, "days of attendance history")
	password := flag.String("password", "password123", "password for all seeded accounts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	s := &seeder{
		userRepo:       postgresql.NewUserRepository(db),
		attendanceRepo: postgresql.NewAttendanceRepository(db),
		updateRepo:     postgresql.NewUpdateRepository(db),
		projectRepo:    postgresql.NewProjectRepository(db),
		taskRepo:       postgresql.NewTaskRepository(db),
		leaveRepo:      postgresql.NewLeaveRepository(db),
		messageRepo:    postgresql.NewMessageRepository(db),
	}

	ctx := context.Background()
	if err := s.run(ctx, *employees, *days, *password); err != nil {
		log.Fatal("Seed failed: ", err)
	}

	fmt.Printf("Seeded %d employees, password for every account: %q\n", *employees, *password)
}

type seeder struct {
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	updateRepo     update.UpdateRepository
	projectRepo    project.ProjectRepository
	taskRepo       project.TaskRepository
	leaveRepo      leave.LeaveRepository
	messageRepo    chat.MessageRepository

	manager  user.User
	teamLead user.User
}

func (s *seeder) run(ctx context.Context, employees, days int, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	passwordHash := string(hash)

	s.manager, err = s.createUser(ctx, "manager@teamtrack.dev", user.RoleManager, passwordHash, nil, nil)
	if err != nil {
		return err
	}
	s.teamLead, err = s.createUser(ctx, "teamlead@teamtrack.dev", user.RoleTeamLead, passwordHash, &s.manager.ID, nil)
	if err != nil {
		return err
	}

	staff := make([]user.User, 0, employees)
	for i := 0; i < employees; i++ {
		email := fmt.Sprintf("employee%d@teamtrack.dev", i+1)
		u, err := s.createUser(ctx, email, user.RoleEmployee, passwordHash, &s.manager.ID, &s.teamLead.ID)
		if err != nil {
			return err
		}
		staff = append(staff, u)
	}
	log.Printf("created %d users", len(staff)+2)

	wg := errgroup.Group{}
	wg.SetLimit(4)
	for _, emp := range staff {
		emp := emp
		wg.Go(func() error {
			if err := s.seedAttendance(ctx, emp, days); err != nil {
				return err
			}
			proj, err := s.seedProject(ctx, emp)
			if err != nil {
				return err
			}
			if err := s.seedUpdates(ctx, emp, proj, days); err != nil {
				return err
			}
			if err := s.seedLeave(ctx, emp); err != nil {
				return err
			}
			return s.seedChat(ctx, emp)
		})
	}
	return wg.Wait()
}

func (s *seeder) createUser(ctx context.Context, email string, role user.Role, passwordHash string, managerID, teamLeadID *string) (user.User, error) {
	created, err := s.userRepo.Create(ctx, user.User{
		Name:         gofakeit.Name(),
		Email:        email,
		PasswordHash: &passwordHash,
		Role:         role,
		ManagerID:    managerID,
		TeamLeadID:   teamLeadID,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user %s: %w", email, err)
	}
	return created, nil
}

// seedAttendance writes one closed punch pair per weekday, walking
// backwards from yesterday. Roughly one day in five starts late.
func (s *seeder) seedAttendance(ctx context.Context, emp user.User, days int) error {
	day := time.Now().UTC().AddDate(0, 0, -1)
	for seeded := 0; seeded < days; day = day.AddDate(0, 0, -1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		seeded++

		workDate := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		punchIn := workDate.Add(8*time.Hour + time.Duration(gofakeit.Number(30, 70))*time.Minute)
		status := attendance.StatusPresent
		if gofakeit.Number(1, 5) == 1 {
			punchIn = workDate.Add(9*time.Hour + time.Duration(gofakeit.Number(20, 90))*time.Minute)
			status = attendance.StatusLate
		}
		punchOut := punchIn.Add(time.Duration(gofakeit.Number(7*60, 9*60)) * time.Minute)

		record, err := s.attendanceRepo.PunchIn(ctx, attendance.Attendance{
			UserID:   emp.ID,
			WorkDate: workDate,
			PunchIn:  punchIn,
			Status:   status,
		})
		if err != nil {
			return fmt.Errorf("failed to seed punch-in for %s: %w", emp.Email, err)
		}
		worked := int(punchOut.Sub(punchIn).Minutes())
		if _, err := s.attendanceRepo.PunchOut(ctx, record.UserID, workDate, punchOut, worked); err != nil {
			return fmt.Errorf("failed to seed punch-out for %s: %w", emp.Email, err)
		}
	}
	return nil
}

func (s *seeder) seedProject(ctx context.Context, emp user.User) (project.Project, error) {
	deadline := time.Now().UTC().AddDate(0, 0, gofakeit.Number(14, 60))
	proj, err := s.projectRepo.Create(ctx, project.Project{
		Title:       strings.TrimSuffix(gofakeit.Sentence(3), "."),
		Description: gofakeit.Paragraph(1, 3, 8, " "),
		Deadline:    &deadline,
		AssigneeID:  emp.ID,
		CreatedBy:   s.manager.ID,
		Status:      project.StatusInProgress,
	})
	if err != nil {
		return project.Project{}, fmt.Errorf("failed to seed project for %s: %w", emp.Email, err)
	}

	for i := 0; i < gofakeit.Number(2, 4); i++ {
		task, err := s.taskRepo.Create(ctx, project.Task{
			ProjectID:  &proj.ID,
			Title:      gofakeit.Sentence(4),
			Content:    gofakeit.Paragraph(1, 2, 10, " "),
			AssigneeID: emp.ID,
			CreatedBy:  s.manager.ID,
			Status:     project.StatusNotStarted,
		})
		if err != nil {
			return project.Project{}, fmt.Errorf("failed to seed task for %s: %w", emp.Email, err)
		}
		if i == 0 {
			_, err = s.taskRepo.AddComment(ctx, project.TaskComment{
				TaskID:   task.ID,
				AuthorID: s.manager.ID,
				Text:     gofakeit.Sentence(8),
			})
			if err != nil {
				return project.Project{}, fmt.Errorf("failed to seed task comment: %w", err)
			}
		}
	}

	// Standalone assignment from the team lead, no project attached.
	_, err = s.taskRepo.Create(ctx, project.Task{
		Title:      gofakeit.Sentence(4),
		Content:    gofakeit.Paragraph(1, 2, 10, " "),
		AssigneeID: emp.ID,
		CreatedBy:  s.teamLead.ID,
		Status:     project.StatusNotStarted,
	})
	if err != nil {
		return project.Project{}, fmt.Errorf("failed to seed standalone task: %w", err)
	}
	return proj, nil
}

// seedUpdates files one daily update per weekday and lets the manager
// decide most of them, leaving the newest few pending for the review
// queue.
func (s *seeder) seedUpdates(ctx context.Context, emp user.User, proj project.Project, days int) error {
	day := time.Now().UTC().AddDate(0, 0, -1)
	for seeded := 0; seeded < days; day = day.AddDate(0, 0, -1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		seeded++

		u, err := s.updateRepo.Create(ctx, update.DailyUpdate{
			UserID:         emp.ID,
			ProjectID:      &proj.ID,
			Title:          proj.Title,
			Status:         project.StatusInProgress,
			Narrative:      gofakeit.Paragraph(1, 3, 12, " "),
			HoursSpent:     float64(gofakeit.Number(10, 18)) / 2,
			ApprovalStatus: update.ApprovalPending,
		})
		if err != nil {
			return fmt.Errorf("failed to seed update for %s: %w", emp.Email, err)
		}

		if seeded <= 2 {
			continue
		}
		decision := update.ApprovalApproved
		feedback := "Looks good, keep it up."
		if gofakeit.Number(1, 6) == 1 {
			decision = update.ApprovalRejected
			feedback = "Needs more detail on what was actually done."
		}
		if _, err := s.updateRepo.Review(ctx, u.ID, decision, s.manager.ID, feedback); err != nil {
			return fmt.Errorf("failed to seed review for %s: %w", emp.Email, err)
		}
	}
	return nil
}

func (s *seeder) seedLeave(ctx context.Context, emp user.User) error {
	start := time.Now().UTC().AddDate(0, 0, gofakeit.Number(7, 30))
	req, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		UserID:    emp.ID,
		LeaveType: gofakeit.RandString([]string{"annual", "sick", "personal"}),
		StartDate: start,
		EndDate:   start.AddDate(0, 0, gofakeit.Number(0, 4)),
		Reason:    gofakeit.Sentence(8),
		Status:    leave.LeaveStatusPending,
	})
	if err != nil {
		return fmt.Errorf("failed to seed leave request for %s: %w", emp.Email, err)
	}

	// Leave every other request pending so the approval queue is not empty.
	if gofakeit.Number(1, 2) == 1 {
		feedback := "Approved, enjoy the time off."
		if _, err := s.leaveRepo.Review(ctx, req.ID, leave.LeaveStatusApproved, s.manager.ID, &feedback); err != nil {
			return fmt.Errorf("failed to seed leave review: %w", err)
		}
	}
	return nil
}

func (s *seeder) seedChat(ctx context.Context, emp user.User) error {
	pairs := []struct {
		from, to string
	}{
		{s.manager.ID, emp.ID},
		{emp.ID, s.manager.ID},
		{s.teamLead.ID, emp.ID},
	}
	for _, p := range pairs {
		body := gofakeit.Sentence(gofakeit.Number(4, 12))
		_, err := s.messageRepo.Create(ctx, chat.Message{
			SenderID:    p.from,
			RecipientID: p.to,
			Body:        &body,
		})
		if err != nil {
			return fmt.Errorf("failed to seed chat message: %w", err)
		}
	}
	return nil
}
