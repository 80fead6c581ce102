package services

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"staticcomments/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2022, 8, 14, 20, 0, 0, 0, time.UTC)

func comment(id, replyingTo string, minutes int) models.Comment {
	return models.Comment{
		ID:           id,
		Author:       "author " + id,
		ReplyingToID: replyingTo,
		Date:         t0.Add(time.Duration(minutes) * time.Minute),
		Message:      "message " + id,
	}
}

func ids(threaded []models.ThreadedComment) []string {
	out := make([]string, len(threaded))
	for i := range threaded {
		out[i] = threaded[i].ID
	}
	return out
}

func depths(threaded []models.ThreadedComment) []int {
	out := make([]int, len(threaded))
	for i := range threaded {
		out[i] = threaded[i].Depth
	}
	return out
}

func TestThread(t *testing.T) {
	tests := []struct {
		name       string
		comments   []models.Comment
		wantIDs    []string
		wantDepths []int
	}{
		{
			name:       "empty input",
			comments:   nil,
			wantIDs:    []string{},
			wantDepths: []int{},
		},
		{
			name:       "reply follows its parent",
			comments:   []models.Comment{comment("b", "a", 2), comment("a", "", 1)},
			wantIDs:    []string{"a", "b"},
			wantDepths: []int{0, 1},
		},
		{
			name:       "top-level comments sort by date",
			comments:   []models.Comment{comment("x", "", 3), comment("y", "", 1)},
			wantIDs:    []string{"y", "x"},
			wantDepths: []int{0, 0},
		},
		{
			name: "whole threads sort by their root",
			comments: []models.Comment{
				comment("a", "", 1),
				comment("b", "", 2),
				comment("a1", "a", 10),
				comment("b1", "b", 3),
				comment("a2", "a", 4),
				comment("a1x", "a1", 11),
			},
			wantIDs:    []string{"a", "a2", "a1", "a1x", "b", "b1"},
			wantDepths: []int{0, 1, 1, 2, 0, 1},
		},
		{
			name: "timestamp ties are broken by id without splitting threads",
			comments: []models.Comment{
				comment("b", "", 1),
				comment("a", "", 1),
				comment("b1", "b", 2),
				comment("a1", "a", 5),
			},
			wantIDs:    []string{"a", "a1", "b", "b1"},
			wantDepths: []int{0, 1, 0, 1},
		},
		{
			name: "reply dated before its parent still follows it",
			comments: []models.Comment{
				comment("a", "", 5),
				comment("b", "a", 1),
				comment("c", "", 3),
			},
			wantIDs:    []string{"c", "a", "b"},
			wantDepths: []int{0, 0, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Thread(tt.comments)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(got))
			assert.Equal(t, tt.wantDepths, depths(got))
		})
	}
}

func TestThread_ParentHandles(t *testing.T) {
	got, err := Thread([]models.Comment{
		comment("c", "b", 3),
		comment("b", "a", 2),
		comment("a", "", 1),
		comment("d", "", 4),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d"}, ids(got))

	assert.Equal(t, -1, got[0].Parent)
	assert.Equal(t, 0, got[1].Parent)
	assert.Equal(t, 1, got[2].Parent)
	assert.Equal(t, -1, got[3].Parent)
}

func TestThread_DoesNotModifyInput(t *testing.T) {
	in := []models.Comment{comment("b", "a", 2), comment("a", "", 1)}
	_, err := Thread(in)
	require.NoError(t, err)
	assert.Equal(t, "b", in[0].ID)
	assert.Equal(t, "a", in[1].ID)
}

func TestThread_DuplicateID(t *testing.T) {
	got, err := Thread([]models.Comment{comment("a", "", 1), comment("a", "", 2)})
	assert.Nil(t, got)

	var dup *DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.ID)
	assert.ErrorIs(t, err, ErrInvalidThread)
}

func TestThread_DanglingReference(t *testing.T) {
	got, err := Thread([]models.Comment{
		comment("a", "", 1),
		comment("b", "a", 2),
		comment("c", "z", 3),
	})
	assert.Nil(t, got)

	var dangling *DanglingReferenceError
	require.ErrorAs(t, err, &dangling)
	assert.Equal(t, "c", dangling.ID)
	assert.Equal(t, "z", dangling.ReplyingToID)
	assert.Contains(t, err.Error(), `"z"`)
	assert.ErrorIs(t, err, ErrInvalidThread)
}

func TestThread_Cycles(t *testing.T) {
	tests := []struct {
		name     string
		comments []models.Comment
		wantIDs  []string
	}{
		{
			name:     "two comments replying to each other",
			comments: []models.Comment{comment("a", "b", 1), comment("b", "a", 2)},
			wantIDs:  []string{"a", "b"},
		},
		{
			name:     "self reply",
			comments: []models.Comment{comment("a", "a", 1)},
			wantIDs:  []string{"a"},
		},
		{
			name: "cycle reached through a valid tail",
			comments: []models.Comment{
				comment("root", "", 0),
				comment("tail", "y", 1),
				comment("x", "z", 2),
				comment("y", "x", 3),
				comment("z", "y", 4),
			},
			wantIDs: []string{"x", "z", "y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Thread(tt.comments)
			assert.Nil(t, got)

			var cyclic *CyclicReferenceError
			require.ErrorAs(t, err, &cyclic)
			assert.Equal(t, tt.wantIDs, cyclic.IDs)
			assert.True(t, errors.Is(err, ErrInvalidThread))
		})
	}
}

// randomForest builds a valid reply forest with colliding timestamps.
func randomForest(r *rand.Rand, n int) []models.Comment {
	comments := make([]models.Comment, n)
	for i := 0; i < n; i++ {
		replyingTo := ""
		if i > 0 && r.Intn(3) > 0 {
			replyingTo = fmt.Sprintf("c%03d", r.Intn(i))
		}
		comments[i] = comment(fmt.Sprintf("c%03d", i), replyingTo, r.Intn(20))
	}
	r.Shuffle(n, func(i, j int) { comments[i], comments[j] = comments[j], comments[i] })
	return comments
}

func TestThread_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		in := randomForest(r, 1+r.Intn(60))
		got, err := Thread(in)
		require.NoError(t, err)
		require.Len(t, got, len(in))

		byID := make(map[string]models.Comment, len(in))
		for _, c := range in {
			byID[c.ID] = c
		}
		pos := make(map[string]int, len(got))
		for i, c := range got {
			pos[c.ID] = i
		}

		for i, c := range got {
			// Depth equals the number of hops to a top-level comment.
			hops := 0
			for cur := byID[c.ID]; cur.ReplyingToID != ""; cur = byID[cur.ReplyingToID] {
				hops++
				// Every ancestor comes strictly earlier.
				assert.Less(t, pos[cur.ReplyingToID], i)
			}
			assert.Equal(t, hops, c.Depth, "depth of %s", c.ID)

			if c.Parent >= 0 {
				assert.Equal(t, c.ReplyingToID, got[c.Parent].ID)
			} else {
				assert.Empty(t, c.ReplyingToID)
			}
		}

		// Siblings appear in ascending (date, id) order.
		lastSibling := make(map[string]models.ThreadedComment)
		for _, c := range got {
			if prev, ok := lastSibling[c.ReplyingToID]; ok {
				assert.True(t, prev.Date.Before(c.Date) || (prev.Date.Equal(c.Date) && prev.ID < c.ID),
					"%s should sort before %s", prev.ID, c.ID)
			}
			lastSibling[c.ReplyingToID] = c
		}

		// Same input in another order gives the same output.
		shuffled := append([]models.Comment(nil), in...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		again, err := Thread(shuffled)
		require.NoError(t, err)
		assert.Equal(t, ids(got), ids(again))
	}
}

func TestThread_LongChain(t *testing.T) {
	const n = 20000
	in := make([]models.Comment, n)
	for i := range in {
		parent := ""
		if i > 0 {
			parent = fmt.Sprintf("c%05d", i-1)
		}
		in[i] = comment(fmt.Sprintf("c%05d", i), parent, i)
	}
	// Replies listed before their parents.
	slices.Reverse(in)

	got, err := Thread(in)
	require.NoError(t, err)
	require.Len(t, got, n)
	for i, c := range got {
		assert.Equal(t, fmt.Sprintf("c%05d", i), c.ID)
		assert.Equal(t, i, c.Depth)
		assert.Equal(t, i-1, c.Parent)
	}

	// A reply chain that closes on itself far from where the walk starts.
	in[len(in)-1] = comment("c00000", "c19999", 0)
	_, err = Thread(in)
	var cyc *CyclicReferenceError
	require.ErrorAs(t, err, &cyc)
	assert.Len(t, cyc.IDs, n)
	assert.Equal(t, "c00000", cyc.IDs[0])
}
