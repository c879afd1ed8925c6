package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turathhub/archive-backend/internal/types"
)

func TestCanModerate(t *testing.T) {
	cases := []struct {
		name    string
		user    *types.User
		profile *types.UserProfile
		want    bool
	}{
		{"nil user", nil, &types.UserProfile{Rank: 999}, false},
		{"ordinary member", &types.User{}, &types.UserProfile{Rank: 1}, false},
		{"high activity rank is not authority", &types.User{}, &types.UserProfile{Rank: 500}, false},
		{"just below moderator tier", &types.User{}, &types.UserProfile{Rank: 996}, false},
		{"moderator tier", &types.User{}, &types.UserProfile{Rank: 997}, true},
		{"consultant tier", &types.User{}, &types.UserProfile{Rank: 998}, true},
		{"expert tier", &types.User{}, &types.UserProfile{Rank: 999}, true},
		{"staff without tier", &types.User{IsStaff: true}, &types.UserProfile{Rank: 1}, true},
		{"superuser without tier", &types.User{IsSuperuser: true}, &types.UserProfile{Rank: 1}, true},
		{"staff with nil profile", &types.User{IsStaff: true}, nil, true},
		{"member with nil profile", &types.User{}, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanModerate(tc.user, tc.profile))
		})
	}
}
