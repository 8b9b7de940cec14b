package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trackline/internal/errors"
	"trackline/internal/model"
)

func projectWithMembers(emails ...string) *model.Project {
	p := &model.Project{ID: 1, Name: "Apollo"}
	for i, email := range emails {
		p.Members = append(p.Members, model.User{ID: uint(i + 10), Email: email})
	}
	return p
}

func TestCanAccess(t *testing.T) {
	project := projectWithMembers("member@example.com")

	tests := []struct {
		name      string
		principal *model.User
		expected  bool
	}{
		{
			name:      "member is granted",
			principal: &model.User{Email: "member@example.com", Role: model.RoleUser},
			expected:  true,
		},
		{
			name:      "non-member is denied",
			principal: &model.User{Email: "outsider@example.com", Role: model.RoleUser},
			expected:  false,
		},
		{
			name:      "project manager bypasses membership",
			principal: &model.User{Email: "pm@example.com", Role: model.RoleProjectManager},
			expected:  true,
		},
		{
			name:      "admin bypasses membership",
			principal: &model.User{Email: "admin@example.com", Role: model.RoleAdmin},
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanAccess(tt.principal, project))
		})
	}
}

func TestCanAccessEmptyMemberSet(t *testing.T) {
	project := projectWithMembers()

	user := &model.User{Email: "anyone@example.com", Role: model.RoleUser}
	assert.False(t, CanAccess(user, project))

	pm := &model.User{Email: "pm@example.com", Role: model.RoleProjectManager}
	assert.True(t, CanAccess(pm, project))
}

// A comment's accessibility is decided by its to-do's feature's project's
// member set, four levels up the chain.
func TestOwningProjectOfComment(t *testing.T) {
	project := projectWithMembers("member@example.com")
	comment := &model.Comment{
		ID: 42,
		ToDo: model.ToDo{
			ID: 7,
			Feature: model.Feature{
				ID:        3,
				ProjectID: project.ID,
				Project:   *project,
			},
		},
	}

	owning := OwningProjectOfComment(comment)
	assert.Equal(t, project.ID, owning.ID)

	outsider := &model.User{Email: "outsider@example.com", Role: model.RoleUser}
	assert.False(t, CanAccess(outsider, owning))

	member := &model.User{Email: "member@example.com", Role: model.RoleUser}
	assert.True(t, CanAccess(member, owning))
}

func TestOwningProjectOfToDoAndRun(t *testing.T) {
	project := projectWithMembers("member@example.com")

	run := &model.Run{ID: 5, ProjectID: project.ID, Project: *project}
	assert.Equal(t, project.ID, OwningProjectOfRun(run).ID)

	todo := &model.ToDo{
		ID:      9,
		Feature: model.Feature{ID: 3, ProjectID: project.ID, Project: *project},
	}
	assert.Equal(t, project.ID, OwningProjectOfToDo(todo).ID)
}

func TestRequire(t *testing.T) {
	project := projectWithMembers("member@example.com")

	member := &model.User{Email: "member@example.com", Role: model.RoleUser}
	assert.NoError(t, Require(member, project))

	outsider := &model.User{Email: "outsider@example.com", Role: model.RoleUser}
	err := Require(outsider, project)
	assert.Error(t, err)
	assert.Equal(t, errors.ForbiddenMessage, err.Error())

	var domainErr *errors.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, errors.KindForbidden, domainErr.Kind)
}
