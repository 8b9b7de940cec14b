package model

// Role is the closed set of user roles.
type Role string

const (
	RoleUser           Role = "USER"
	RoleProjectManager Role = "PROJECT_MANAGER"
	RoleAdmin          Role = "ADMIN"
)

// Status is the closed set of lifecycle states shared by projects, runs,
// features and to-dos.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "In progress"
	StatusCompleted  Status = "Completed"
)

// ToDoType is the closed set of to-do kinds.
type ToDoType string

const (
	ToDoTypeTask ToDoType = "task"
	ToDoTypeBug  ToDoType = "bug"
)

// The valid-value tables below are the single source of truth for enum
// validation; every service validator consults these instead of repeating
// its own switch.

var validRoles = map[Role]bool{
	RoleUser:           true,
	RoleProjectManager: true,
	RoleAdmin:          true,
}

var validStatuses = map[Status]bool{
	StatusNew:        true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

var validToDoTypes = map[ToDoType]bool{
	ToDoTypeTask: true,
	ToDoTypeBug:  true,
}

// IsValid reports whether the role is a member of the closed set.
func (r Role) IsValid() bool { return validRoles[r] }

// IsValid reports whether the status is a member of the closed set.
func (s Status) IsValid() bool { return validStatuses[s] }

// IsValid reports whether the to-do type is a member of the closed set.
func (t ToDoType) IsValid() bool { return validToDoTypes[t] }
