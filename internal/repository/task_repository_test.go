package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-service/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TaskRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo TaskRepository
}

func (s *TaskRepositoryTestSuite) SetupTest() {
	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	s.Require().NoError(s.db.AutoMigrate(&models.Task{}))
	s.repo = NewTaskRepository(s.db)
}

func (s *TaskRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *TaskRepositoryTestSuite) seedTask(code, project, employee string, status models.Status, deleted bool) *models.Task {
	task := &models.Task{
		TaskCode:         code,
		TaskSubject:      "Subject " + code,
		TaskStatus:       status,
		ProjectCode:      project,
		AssignedEmployee: employee,
		AssignedDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		IsDeleted:        deleted,
	}
	s.Require().NoError(s.db.Create(task).Error)
	return task
}

func (s *TaskRepositoryTestSuite) TestFindByTaskCode() {
	s.seedTask("PRJ1-T1", "PRJ1", "bob", models.StatusOpen, false)

	found, err := s.repo.FindByTaskCode("PRJ1-T1")
	s.Require().NoError(err)
	s.Equal("PRJ1-T1", found.TaskCode)

	_, err = s.repo.FindByTaskCode("MISSING")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

// A deleted task's row stays findable, but only under its renamed code.
func (s *TaskRepositoryTestSuite) TestFindByTaskCode_DeletedRenamedRow() {
	s.seedTask("PRJ1-T1-42", "PRJ1", "bob", models.StatusOpen, true)

	found, err := s.repo.FindByTaskCode("PRJ1-T1-42")
	s.Require().NoError(err)
	s.True(found.IsDeleted)

	_, err = s.repo.FindByTaskCode("PRJ1-T1")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *TaskRepositoryTestSuite) TestFindAllByProjectCode_SkipsDeleted() {
	s.seedTask("PRJ1-T1", "PRJ1", "bob", models.StatusOpen, false)
	s.seedTask("PRJ1-T2", "PRJ1", "bob", models.StatusOpen, false)
	s.seedTask("PRJ1-T3-9", "PRJ1", "bob", models.StatusOpen, true)
	s.seedTask("PRJ2-T1", "PRJ2", "bob", models.StatusOpen, false)

	tasks, err := s.repo.FindAllByProjectCode("PRJ1")
	s.Require().NoError(err)
	s.Len(tasks, 2)
}

func (s *TaskRepositoryTestSuite) TestFindAllByStatusAndEmployee() {
	s.seedTask("PRJ1-T1", "PRJ1", "bob", models.StatusCompleted, false)
	s.seedTask("PRJ1-T2", "PRJ1", "bob", models.StatusOpen, false)
	s.seedTask("PRJ1-T3", "PRJ1", "dave", models.StatusCompleted, false)

	completed, err := s.repo.FindAllByStatusAndEmployee(models.StatusCompleted, "bob")
	s.Require().NoError(err)
	s.Len(completed, 1)
	s.Equal("PRJ1-T1", completed[0].TaskCode)

	pending, err := s.repo.FindAllByStatusNotAndEmployee(models.StatusCompleted, "bob")
	s.Require().NoError(err)
	s.Len(pending, 1)
	s.Equal("PRJ1-T2", pending[0].TaskCode)
}

func (s *TaskRepositoryTestSuite) TestCounts() {
	s.seedTask("PRJ1-T1", "PRJ1", "bob", models.StatusCompleted, false)
	s.seedTask("PRJ1-T2", "PRJ1", "bob", models.StatusOpen, false)
	s.seedTask("PRJ1-T3", "PRJ1", "dave", models.StatusInProgress, false)
	s.seedTask("PRJ1-T4-7", "PRJ1", "bob", models.StatusOpen, true)

	byEmployee, err := s.repo.CountByAssignedEmployee("bob")
	s.Require().NoError(err)
	s.Equal(int64(2), byEmployee)

	completed, err := s.repo.CountByProjectAndStatus("PRJ1", models.StatusCompleted)
	s.Require().NoError(err)
	s.Equal(int64(1), completed)

	nonCompleted, err := s.repo.CountByProjectAndStatusNot("PRJ1", models.StatusCompleted)
	s.Require().NoError(err)
	s.Equal(int64(2), nonCompleted)
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}

// TestCountByProjectAndStatus_SQL pins the generated query against the
// production MySQL dialect.
func TestCountByProjectAndStatus_SQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks` WHERE project_code = \\? AND task_status = \\? AND is_deleted = \\?").
		WithArgs("PRJ1", "COMPLETED", false).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	repo := NewTaskRepository(db)
	count, err := repo.CountByProjectAndStatus("PRJ1", models.StatusCompleted)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
