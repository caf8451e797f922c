package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPairKey(t *testing.T) {
	t.Run("smaller id always comes first", func(t *testing.T) {
		assert.Equal(t, "101:205", NewPairKey(101, 205))
		assert.Equal(t, "101:205", NewPairKey(205, 101))
	})

	t.Run("both orders agree", func(t *testing.T) {
		pairs := [][2]int64{{1, 2}, {9, 3}, {1000000, 7}, {42, 43}}
		for _, p := range pairs {
			assert.Equal(t, NewPairKey(p[0], p[1]), NewPairKey(p[1], p[0]))
		}
	})
}

func TestOrderPair(t *testing.T) {
	low, high := OrderPair(205, 101)
	assert.Equal(t, int64(101), low)
	assert.Equal(t, int64(205), high)

	low, high = OrderPair(101, 205)
	assert.Equal(t, int64(101), low)
	assert.Equal(t, int64(205), high)
}

func TestChatRoom_Counterpart(t *testing.T) {
	room := &ChatRoom{Name: "roomnameaa", PairKey: "101:205", UserLow: 101, UserHigh: 205}

	t.Run("participants see each other", func(t *testing.T) {
		other, err := room.Counterpart(101)
		assert.NoError(t, err)
		assert.Equal(t, int64(205), other)

		other, err = room.Counterpart(205)
		assert.NoError(t, err)
		assert.Equal(t, int64(101), other)
	})

	t.Run("outsider gets ErrNotParticipant", func(t *testing.T) {
		_, err := room.Counterpart(7)
		assert.ErrorIs(t, err, ErrNotParticipant)
	})
}

func TestGenerateRoomName(t *testing.T) {
	t.Run("ten lowercase alphanumeric chars", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			name, err := GenerateRoomName()
			assert.NoError(t, err)
			assert.Len(t, name, 10)
			for _, c := range name {
				ok := (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
				assert.True(t, ok, "unexpected char %q in %q", c, name)
			}
		}
	})

	t.Run("every charset char shows up", func(t *testing.T) {
		seen := map[rune]bool{}
		for i := 0; i < 2000; i++ {
			name, err := GenerateRoomName()
			assert.NoError(t, err)
			for _, c := range name {
				seen[c] = true
			}
		}
		// 20000 draws over 36 chars, a missing char means the
		// generator is not uniform
		assert.Len(t, seen, 36)
	})

	t.Run("names vary", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			name, err := GenerateRoomName()
			assert.NoError(t, err)
			seen[name] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}
