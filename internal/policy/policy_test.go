package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/model"
)

func TestReadOnlyOrAdmin(t *testing.T) {
	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	moderator := &model.User{ID: 2, Role: model.RoleModerator}
	user := &model.User{ID: 3, Role: model.RoleUser}
	superuser := &model.User{ID: 4, Role: model.RoleUser, Superuser: true}

	tests := []struct {
		name      string
		requester *model.User
		mutating  bool
		want      bool
	}{
		{"anonymous read", nil, false, true},
		{"anonymous write", nil, true, false},
		{"plain user read", user, false, true},
		{"plain user write", user, true, false},
		{"moderator write", moderator, true, false},
		{"admin write", admin, true, true},
		{"superuser write", superuser, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadOnlyOrAdmin(tt.requester, tt.mutating))
		})
	}
}

func TestAdminOnly(t *testing.T) {
	assert.False(t, AdminOnly(nil))
	assert.False(t, AdminOnly(&model.User{Role: model.RoleUser}))
	assert.False(t, AdminOnly(&model.User{Role: model.RoleModerator}))
	assert.True(t, AdminOnly(&model.User{Role: model.RoleAdmin}))
	assert.True(t, AdminOnly(&model.User{Role: model.RoleUser, Superuser: true}))
}

func TestOwnerOrEscalated(t *testing.T) {
	const authorID = 7

	tests := []struct {
		name      string
		requester *model.User
		mutating  bool
		want      bool
	}{
		{"anonymous read", nil, false, true},
		{"anonymous write", nil, true, false},
		{"author write", &model.User{ID: authorID, Role: model.RoleUser}, true, true},
		{"other user write", &model.User{ID: 42, Role: model.RoleUser}, true, false},
		{"other user read", &model.User{ID: 42, Role: model.RoleUser}, false, true},
		{"moderator write", &model.User{ID: 42, Role: model.RoleModerator}, true, true},
		{"admin write", &model.User{ID: 42, Role: model.RoleAdmin}, true, true},
		{"staff flag write", &model.User{ID: 42, Role: model.RoleUser, Staff: true}, true, true},
		{"superuser flag write", &model.User{ID: 42, Role: model.RoleUser, Superuser: true}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OwnerOrEscalated(tt.requester, tt.mutating, authorID))
		})
	}
}

func TestAnonymousOnly(t *testing.T) {
	assert.True(t, AnonymousOnly(nil))
	assert.False(t, AnonymousOnly(&model.User{ID: 1}))
}
