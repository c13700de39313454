package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/ynym/garage-api/internal/constants"
	"github.com/ynym/garage-api/internal/database"
	"github.com/ynym/garage-api/internal/models"
	"github.com/ynym/garage-api/internal/repository"
	"github.com/ynym/garage-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
	userID  uuid.UUID
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Task{})
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskService := services.NewTaskService(repository.NewTaskRepository(suite.db))
	suite.handler = NewTaskHandler(taskService)
	suite.userID = uuid.New()

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestTask(title string) *models.Task {
	task := &models.Task{
		UserID: suite.userID,
		Title:  title,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *TaskHandlerTestSuite) setIDParam(c *gin.Context, id uuid.UUID) {
	c.Params = append(c.Params, gin.Param{Key: "id", Value: id.String()})
}

// TestListTasks_Success tests successful task listing
func (suite *TaskHandlerTestSuite) TestListTasks_Success() {
	task := suite.createTestTask("Change oil")

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, suite.userID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), response, "tasks")
	assert.Contains(suite.T(), response, "pagination")

	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 1)

	firstTask := tasks[0].(map[string]interface{})
	assert.Equal(suite.T(), task.Title, firstTask["title"])
}

// TestListTasks_Unauthorized tests listing without authentication
func (suite *TaskHandlerTestSuite) TestListTasks_Unauthorized() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/tasks", nil)
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestListTasks_InvalidLimit tests listing with an out-of-range limit
func (suite *TaskHandlerTestSuite) TestListTasks_InvalidLimit() {
	c, w := suite.createAuthContext("GET", "/api/tasks", nil, suite.userID)
	c.Request.URL.RawQuery = "limit=1001"

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListTasks_OtherUsersTasksHidden tests owner scoping
func (suite *TaskHandlerTestSuite) TestListTasks_OtherUsersTasksHidden() {
	suite.createTestTask("mine")

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, uuid.New())

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), response["tasks"])
}

// TestGetTask_Success tests successful task retrieval
func (suite *TaskHandlerTestSuite) TestGetTask_Success() {
	task := suite.createTestTask("Check tire pressure")

	c, w := suite.createAuthContext("GET", "/api/tasks/"+task.ID.String(), nil, suite.userID)
	suite.setIDParam(c, task.ID)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), task.ID.String(), response["id"])
	assert.Equal(suite.T(), task.Title, response["title"])
}

// TestGetTask_NotFound tests retrieval of a missing task
func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	c, w := suite.createAuthContext("GET", "/api/tasks/unknown", nil, suite.userID)
	suite.setIDParam(c, uuid.New())

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateTask_Success tests successful task creation
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	requestBody := map[string]interface{}{
		"title":       "New Task",
		"description": "Task Description",
		"due_date":    "2026-09-15",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, suite.userID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Task", response["title"])
	assert.Equal(suite.T(), "2026-09-15", response["due_date"])
	assert.Equal(suite.T(), suite.userID.String(), response["user_id"])
}

// TestCreateTask_InvalidRequest tests task creation without a title
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidRequest() {
	requestBody := map[string]interface{}{
		"description": "no title",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, suite.userID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_InvalidDueDate tests task creation with a malformed date
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidDueDate() {
	requestBody := map[string]interface{}{
		"title":    "bad date",
		"due_date": "next tuesday",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, suite.userID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateTask_Success tests a partial update
func (suite *TaskHandlerTestSuite) TestUpdateTask_Success() {
	task := suite.createTestTask("Old Title")

	requestBody := map[string]interface{}{
		"title": "Updated Title",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/"+task.ID.String(), body, suite.userID)
	suite.setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Updated Title", response["title"])
}

// TestUpdateTask_NullDueDate tests clearing due_date with an explicit null
func (suite *TaskHandlerTestSuite) TestUpdateTask_NullDueDate() {
	task := suite.createTestTask("Task with Due Date")
	dueDate := time.Now().Add(24 * time.Hour)
	task.DueDate = &dueDate
	suite.Require().NoError(suite.db.Save(task).Error)

	requestBody := map[string]interface{}{
		"due_date": nil,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/"+task.ID.String(), body, suite.userID)
	suite.setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), response["due_date"])
}

// TestUpdateTask_Complete tests that completing a task sets completed_at
func (suite *TaskHandlerTestSuite) TestUpdateTask_Complete() {
	task := suite.createTestTask("Finish me")

	requestBody := map[string]interface{}{
		"is_completed": true,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/"+task.ID.String(), body, suite.userID)
	suite.setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), true, response["is_completed"])
	assert.NotNil(suite.T(), response["completed_at"])
}

// TestUpdateTask_InvalidRequest tests task update with malformed JSON
func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidRequest() {
	task := suite.createTestTask("Test Task")

	c, w := suite.createAuthContext("PATCH", "/api/tasks/"+task.ID.String(), []byte("invalid json"), suite.userID)
	suite.setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateTask_NullTitle tests that a required field cannot be nulled
func (suite *TaskHandlerTestSuite) TestUpdateTask_NullTitle() {
	task := suite.createTestTask("Keep me")

	requestBody := map[string]interface{}{
		"title": nil,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/"+task.ID.String(), body, suite.userID)
	suite.setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestDeleteTask_Success tests successful task deletion
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	task := suite.createTestTask("Task to Delete")

	c, w := suite.createAuthContext("DELETE", "/api/tasks/"+task.ID.String(), nil, suite.userID)
	suite.setIDParam(c, task.ID)

	suite.handler.DeleteTask(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	// Verify task is deleted
	var deletedTask models.Task
	err := suite.db.First(&deletedTask, "id = ?", task.ID).Error
	assert.Error(suite.T(), err) // Should return error because of soft delete
}

// TestDeleteTask_OtherUser tests deletion of another user's task
func (suite *TaskHandlerTestSuite) TestDeleteTask_OtherUser() {
	task := suite.createTestTask("Task to Delete")

	c, w := suite.createAuthContext("DELETE", "/api/tasks/"+task.ID.String(), nil, uuid.New())
	suite.setIDParam(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
