// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Role describes what a user is allowed to do.
type Role string

// Known roles.
const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole validates and normalizes a role string.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleManager:
		return RoleManager, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Visibility declares the audience scope of a recognition.
type Visibility string

// Known visibility levels.
const (
	VisibilityPublic    Visibility = "PUBLIC"
	VisibilityPrivate   Visibility = "PRIVATE"
	VisibilityAnonymous Visibility = "ANONYMOUS"
)

// ParseVisibility validates and normalizes a visibility string.
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(strings.ToUpper(strings.TrimSpace(s))) {
	case VisibilityPublic:
		return VisibilityPublic, nil
	case VisibilityPrivate:
		return VisibilityPrivate, nil
	case VisibilityAnonymous:
		return VisibilityAnonymous, nil
	}
	return "", fmt.Errorf("unknown visibility: %q", s)
}

// User is a directory entry. TeamID is empty for users without a team.
type User struct {
	ID     string
	Email  string
	Name   string
	Role   Role
	TeamID string
}

// Team is a directory entry. Membership is derived by scanning users,
// never stored on the team itself.
type Team struct {
	ID   string
	Name string
}

// Recognition is an immutable appreciation message. Instances are owned
// by the feed store; other components hold them by value.
type Recognition struct {
	ID          string
	Message     string
	Emoji       string
	Visibility  Visibility
	SenderID    string
	RecipientID string
	CreatedAt   time.Time
}

// Draft carries the fields a caller supplies when creating a recognition.
// The store assigns ID and CreatedAt.
type Draft struct {
	Message     string
	Emoji       string
	Visibility  Visibility
	SenderID    string
	RecipientID string
}
