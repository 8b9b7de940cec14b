// Package access decides whether a principal may act on an entity at any
// level of the Project - Run - Feature - ToDo - Comment hierarchy. The
// decision always reduces to the owning project's member set; the
// evaluator is a pure predicate over already-loaded entities, so resolvers
// must eagerly load the parent chain before calling it.
package access

import (
	"trackline/internal/errors"
	"trackline/internal/model"
)

// CanAccess reports whether the principal may act on anything owned by the
// given project. PROJECT_MANAGER and ADMIN bypass membership entirely;
// everyone else must appear in the project's member set, matched by email.
func CanAccess(principal *model.User, project *model.Project) bool {
	switch principal.Role {
	case model.RoleProjectManager, model.RoleAdmin:
		return true
	default:
		return project.HasMember(principal.Email)
	}
}

// Owning-project resolution, composed bottom-up. Each function assumes the
// parent links were preloaded by the repository.

// OwningProjectOfRun returns the project that owns the run.
func OwningProjectOfRun(run *model.Run) *model.Project {
	return &run.Project
}

// OwningProjectOfFeature returns the project that owns the feature,
// via the denormalized project link.
func OwningProjectOfFeature(feature *model.Feature) *model.Project {
	return &feature.Project
}

// OwningProjectOfToDo returns the project that owns the to-do.
func OwningProjectOfToDo(todo *model.ToDo) *model.Project {
	return OwningProjectOfFeature(&todo.Feature)
}

// OwningProjectOfComment returns the project that owns the comment.
func OwningProjectOfComment(comment *model.Comment) *model.Project {
	return OwningProjectOfToDo(&comment.ToDo)
}

// Require converts a denied access check into the fixed Forbidden error.
// Callers must treat the error as terminal for the request.
func Require(principal *model.User, project *model.Project) error {
	if !CanAccess(principal, project) {
		return errors.NewForbidden()
	}
	return nil
}
