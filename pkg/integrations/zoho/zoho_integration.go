package zohointegration

import (
	"context"

	"github.com/flowbaker/alloybridge/pkg/domain"
	"github.com/rs/zerolog/log"
)

const (
	ZohoActionType_ListTasks  domain.ActionID = "listTasks"
	ZohoActionType_CreateTask domain.ActionID = "createTask"
	ZohoActionType_UpdateTask domain.ActionID = "updateTask"
	ZohoActionType_DeleteTask domain.ActionID = "deleteTask"
)

const (
	DefaultTaskStatus   = "Not Started"
	DefaultTaskPriority = "Normal"

	untitledTask  = "Untitled Task"
	unassigned    = "Unassigned"
	noDueDate     = "No due date"
	schemaVersion = "2025-06"
	taskIDParam   = "taskId"
)

// StatusTable maps the UI labels onto the Zoho CRM task status enum.
var StatusTable = domain.NewStatusTable(
	domain.StatusPair{UI: "Done", Vendor: "Completed"},
	domain.StatusPair{UI: "Working on it", Vendor: "In Progress"},
	domain.StatusPair{UI: "Stuck", Vendor: "Waiting for input"},
)

var responseSchemas = map[domain.ActionID]domain.ResponseSchema{
	ZohoActionType_ListTasks: {
		Action:  ZohoActionType_ListTasks,
		Version: schemaVersion,
		Paths:   []string{"responseData.data.tasks", "data.tasks", "responseData.data", "data"},
	},
	ZohoActionType_CreateTask: {
		Action:  ZohoActionType_CreateTask,
		Version: schemaVersion,
		Paths:   []string{"responseData.data.task", "data.task", "responseData.data", "data"},
	},
	ZohoActionType_UpdateTask: {
		Action:       ZohoActionType_UpdateTask,
		Version:      schemaVersion,
		Paths:        []string{"responseData.data", "data"},
		RootFallback: true,
	},
	ZohoActionType_DeleteTask: {
		Action:       ZohoActionType_DeleteTask,
		Version:      schemaVersion,
		Paths:        []string{"responseData.data", "data"},
		RootFallback: true,
	},
}

type zohoOwner struct {
	Name string `json:"name"`
}

// zohoTask is the subset of a Zoho CRM Tasks record the client renders.
type zohoTask struct {
	ID           string     `json:"id"`
	Subject      string     `json:"Subject"`
	Name         string     `json:"name"`
	Description  string     `json:"Description"`
	Status       string     `json:"Status"`
	Priority     string     `json:"Priority"`
	DueDate      *string    `json:"Due_Date"`
	Owner        *zohoOwner `json:"Owner"`
	ModifiedTime string     `json:"Modified_Time"`
	CreatedTime  string     `json:"Created_Time"`
}

var _ domain.TaskService = (*ZohoIntegration)(nil)

type ZohoIntegration struct {
	executor           domain.ActionExecutor
	credentialResolver domain.CredentialResolver
	identityMapper     domain.IdentityMapper
	apiVersion         string
}

type ZohoIntegrationDependencies struct {
	Executor           domain.ActionExecutor
	CredentialResolver domain.CredentialResolver
	IdentityMapper     domain.IdentityMapper
	APIVersion         string
}

func NewZohoIntegration(deps ZohoIntegrationDependencies) *ZohoIntegration {
	apiVersion := deps.APIVersion
	if apiVersion == "" {
		apiVersion = schemaVersion
	}

	return &ZohoIntegration{
		executor:           deps.Executor,
		credentialResolver: deps.CredentialResolver,
		identityMapper:     deps.IdentityMapper,
		apiVersion:         apiVersion,
	}
}

// ListTasks fetches the user's CRM tasks and reshapes them into list rows.
// The listing action also wants the identity and credential forwarded as
// vendor headers, so the credential is resolved up front.
func (i *ZohoIntegration) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	runalloyUserID := i.identityMapper.MapUserID(userID)

	credentialID, err := i.credentialResolver.Resolve(ctx, userID, domain.ConnectorZohoCRM)
	if err != nil {
		return nil, err
	}

	headers := map[string]any{
		"x-api-version":   i.apiVersion,
		"x-api-user-id":   runalloyUserID,
		"x-credential-id": credentialID,
		"x-alloy-userid":  runalloyUserID,
	}

	response, err := i.execute(ctx, ZohoActionType_ListTasks, domain.ActionParams{
		UserID:            userID,
		CredentialID:      credentialID,
		QueryParameters:   map[string]any{},
		RequestBody:       map[string]any{},
		AdditionalHeaders: headers,
	})
	if err != nil {
		return nil, err
	}

	records, err := domain.ExtractInto[[]zohoTask](responseSchemas[ZohoActionType_ListTasks], response)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(records))
	for _, record := range records {
		tasks = append(tasks, toTask(record))
	}

	log.Debug().Str("user_id", runalloyUserID).Int("count", len(tasks)).Msg("Zoho: listed tasks")

	return tasks, nil
}

func (i *ZohoIntegration) CreateTask(ctx context.Context, userID, name string) (any, error) {
	return i.executeAndExtract(ctx, ZohoActionType_CreateTask, domain.ActionParams{
		UserID: userID,
		RequestBody: map[string]any{
			"data": []any{
				map[string]any{
					"Subject":  name,
					"Status":   DefaultTaskStatus,
					"Priority": DefaultTaskPriority,
				},
			},
		},
	})
}

func (i *ZohoIntegration) UpdateTask(ctx context.Context, userID, taskID string, update domain.TaskUpdate) (any, error) {
	fields := UpdateFields(update)

	log.Debug().Str("task_id", taskID).Interface("fields", fields).Msg("Zoho: updating task")

	return i.executeAndExtract(ctx, ZohoActionType_UpdateTask, domain.ActionParams{
		UserID:     userID,
		PathParams: map[string]any{taskIDParam: taskID},
		RequestBody: map[string]any{
			"data": []any{fields},
		},
	})
}

func (i *ZohoIntegration) DeleteTask(ctx context.Context, userID, taskID string) (any, error) {
	return i.executeAndExtract(ctx, ZohoActionType_DeleteTask, domain.ActionParams{
		UserID:      userID,
		PathParams:  map[string]any{taskIDParam: taskID},
		RequestBody: map[string]any{},
	})
}

// UpdateFields converts a UI task update into Zoho CRM record fields.
func UpdateFields(update domain.TaskUpdate) map[string]any {
	fields := map[string]any{}

	if update.Name != nil {
		fields["Subject"] = *update.Name
	}

	if column, ok := domain.FindColumn(update.ColumnValues, domain.ColumnStatus); ok {
		fields["Status"] = StatusTable.ToVendor(column.Text)
	}

	if column, ok := domain.FindColumn(update.ColumnValues, domain.ColumnPriority); ok {
		fields["Priority"] = column.Text
	}

	if column, ok := domain.FindColumn(update.ColumnValues, domain.ColumnDueDate); ok && column.Text != noDueDate {
		fields["Due_Date"] = column.Text
	}

	return fields
}

func toTask(record zohoTask) domain.Task {
	name := record.Subject
	if name == "" {
		name = record.Name
	}
	if name == "" {
		name = untitledTask
	}

	status := record.Status
	if status == "" {
		status = DefaultTaskStatus
	}

	priority := record.Priority
	if priority == "" {
		priority = DefaultTaskPriority
	}

	owner := unassigned
	if record.Owner != nil && record.Owner.Name != "" {
		owner = record.Owner.Name
	}

	dueDateText := noDueDate
	if record.DueDate != nil && *record.DueDate != "" {
		dueDateText = *record.DueDate
	}

	return domain.Task{
		ID:           record.ID,
		Name:         name,
		Description:  record.Description,
		DueDate:      record.DueDate,
		Priority:     priority,
		Status:       status,
		Owner:        owner,
		ModifiedTime: record.ModifiedTime,
		CreatedTime:  record.CreatedTime,
		ColumnValues: []domain.ColumnValue{
			{ID: domain.ColumnStatus, Text: StatusTable.ToUI(status), Type: "status"},
			{ID: domain.ColumnPriority, Text: priority, Type: "priority"},
			{ID: domain.ColumnDueDate, Text: dueDateText, Type: "date"},
			{ID: domain.ColumnOwner, Text: owner, Type: "person"},
		},
	}
}

func (i *ZohoIntegration) execute(ctx context.Context, action domain.ActionID, params domain.ActionParams) (any, error) {
	return i.executor.Execute(ctx, domain.ConnectorZohoCRM, action, params)
}

func (i *ZohoIntegration) executeAndExtract(ctx context.Context, action domain.ActionID, params domain.ActionParams) (any, error) {
	response, err := i.execute(ctx, action, params)
	if err != nil {
		return nil, err
	}

	return responseSchemas[action].Extract(response)
}
