package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name          string
		boardCategory string
		actorRole     string
		actorNickname string
		want          string
	}{
		{"student on normal board", BoardCategoryNormal, RoleStudent, "alice", "alice"},
		{"admin on normal board", BoardCategoryNormal, RoleAdmin, "staff", "staff"},
		{"guest on normal board", BoardCategoryNormal, RoleGuest, "visitor", GuestLabel},
		{"student on anonymous board", BoardCategoryAnonymous, RoleStudent, "alice", AnonymousLabel},
		{"guest on anonymous board", BoardCategoryAnonymous, RoleGuest, "visitor", AnonymousLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.boardCategory, tt.actorRole, tt.actorNickname))
		})
	}
}
