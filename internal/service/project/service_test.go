package project

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/project"
)

// fakeTaskRepository keeps tasks and comments in memory.
type fakeTaskRepository struct {
	tasks    map[string]project.Task
	comments []project.TaskComment
	nextID   int
}

func newFakeTaskRepository() *fakeTaskRepository {
	return &fakeTaskRepository{tasks: make(map[string]project.Task)}
}

func (f *fakeTaskRepository) Create(ctx context.Context, t project.Task) (project.Task, error) {
	f.nextID++
	t.ID = fmt.Sprintf("task-%d", f.nextID)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskRepository) GetByID(ctx context.Context, id string) (project.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return project.Task{}, project.ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeTaskRepository) ListByAssignee(ctx context.Context, assigneeID string) ([]project.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepository) ListByProject(ctx context.Context, projectID string) ([]project.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepository) UpdateStatus(ctx context.Context, id string, status project.Status) error {
	t, ok := f.tasks[id]
	if !ok {
		return project.ErrTaskNotFound
	}
	t.Status = status
	f.tasks[id] = t
	return nil
}

func (f *fakeTaskRepository) AddComment(ctx context.Context, c project.TaskComment) (project.TaskComment, error) {
	f.nextID++
	c.ID = fmt.Sprintf("comment-%d", f.nextID)
	c.CreatedAt = time.Now()
	f.comments = append(f.comments, c)
	return c, nil
}

func (f *fakeTaskRepository) ListComments(ctx context.Context, taskID string) ([]project.TaskComment, error) {
	var out []project.TaskComment
	for _, c := range f.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

// fakeFileService records uploads and hands back deterministic URLs.
type fakeFileService struct {
	taskUploads []string
}

func (f *fakeFileService) UploadAvatar(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	return "/uploads/avatars/" + filename, nil
}

func (f *fakeFileService) UploadUpdateImage(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	return "/uploads/updates/" + filename, nil
}

func (f *fakeFileService) UploadTaskAttachment(ctx context.Context, taskID string, file io.Reader, filename string) (string, error) {
	url := "/uploads/tasks/" + taskID + "/" + filename
	f.taskUploads = append(f.taskUploads, url)
	return url, nil
}

func (f *fakeFileService) UploadChatFile(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	return "/uploads/chat/" + filename, nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error { return nil }

func (f *fakeFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return path, nil
}

func contextWithClaims(t *testing.T, userID, role string) context.Context {
	t.Helper()

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	_, tokenString, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    role,
	})
	require.NoError(t, err)

	token, err := tokenAuth.Decode(tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

// attachmentHeaders builds real multipart file headers the way an HTTP
// form upload would.
func attachmentHeaders(t *testing.T, filenames ...string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range filenames {
		fw, err := mw.CreateFormFile("attachments", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("file content for " + name))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	return form.File["attachments"]
}

func TestAddTaskComment_UploadsAttachments(t *testing.T) {
	repo := newFakeTaskRepository()
	files := &fakeFileService{}
	svc := &ProjectServiceImpl{TaskRepository: repo, fileService: files}
	ctx := contextWithClaims(t, "emp-1", "employee")

	task, err := repo.Create(context.Background(), project.Task{
		Title:      "Fix login redirect",
		AssigneeID: "emp-1",
		CreatedBy:  "manager-1",
		Status:     project.StatusInProgress,
	})
	require.NoError(t, err)

	result, err := svc.AddTaskComment(ctx, project.AddTaskCommentRequest{
		TaskID: task.ID,
		Text:   "Repro steps attached",
		Files:  attachmentHeaders(t, "repro.txt", "trace.zip"),
	})
	require.NoError(t, err)

	assert.Equal(t, "emp-1", result.AuthorID)
	require.Len(t, result.AttachmentURLs, 2)
	assert.Contains(t, result.AttachmentURLs[0], "repro.txt")
	assert.Contains(t, result.AttachmentURLs[1], "trace.zip")
	assert.Equal(t, result.AttachmentURLs, files.taskUploads)

	// The stored comment carries the uploaded URLs.
	stored, err := repo.ListComments(context.Background(), task.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, result.AttachmentURLs, stored[0].AttachmentURLs)
}

func TestAddTaskComment_JSONOnlyStillWorks(t *testing.T) {
	repo := newFakeTaskRepository()
	svc := &ProjectServiceImpl{TaskRepository: repo, fileService: &fakeFileService{}}
	ctx := contextWithClaims(t, "emp-1", "employee")

	task, err := repo.Create(context.Background(), project.Task{
		Title:      "Write release notes",
		AssigneeID: "emp-1",
		CreatedBy:  "manager-1",
		Status:     project.StatusNotStarted,
	})
	require.NoError(t, err)

	result, err := svc.AddTaskComment(ctx, project.AddTaskCommentRequest{
		TaskID:         task.ID,
		Text:           "Draft is in the shared doc",
		AttachmentURLs: []string{"/uploads/tasks/external.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/tasks/external.pdf"}, result.AttachmentURLs)
}

func TestAddTaskComment_UnknownTask(t *testing.T) {
	svc := &ProjectServiceImpl{TaskRepository: newFakeTaskRepository(), fileService: &fakeFileService{}}
	ctx := contextWithClaims(t, "emp-1", "employee")

	_, err := svc.AddTaskComment(ctx, project.AddTaskCommentRequest{
		TaskID: "missing",
		Text:   "hello",
	})
	assert.ErrorIs(t, err, project.ErrTaskNotFound)
}
