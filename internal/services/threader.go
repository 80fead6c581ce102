package services

import (
	"errors"
	"fmt"
	"slices"
	"staticcomments/internal/models"
	"strings"
)

// ErrInvalidThread matches every structural error returned by Thread.
var ErrInvalidThread = errors.New("invalid comment thread")

// DuplicateIDError 同一篇文章中出现重复的评论 ID
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate comment id %q", e.ID)
}

func (e *DuplicateIDError) Is(target error) bool { return target == ErrInvalidThread }

// DanglingReferenceError 回复的目标评论不存在
type DanglingReferenceError struct {
	ID           string
	ReplyingToID string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("comment %q replies to unknown comment %q", e.ID, e.ReplyingToID)
}

func (e *DanglingReferenceError) Is(target error) bool { return target == ErrInvalidThread }

// CyclicReferenceError 回复链形成环
type CyclicReferenceError struct {
	IDs []string // Cycle members, each replying to the next; the last replies to the first
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("comment reply cycle: %s -> %s", strings.Join(e.IDs, " -> "), e.IDs[0])
}

func (e *CyclicReferenceError) Is(target error) bool { return target == ErrInvalidThread }

// siblingLess orders replies to the same comment, and top-level comments.
func siblingLess(comments []models.Comment) func(a, b int) int {
	return func(a, b int) int {
		if c := comments[a].Date.Compare(comments[b].Date); c != 0 {
			return c
		}
		return strings.Compare(comments[a].ID, comments[b].ID)
	}
}

// Thread 将一篇文章的评论整理为回复树，并按确定的全序输出
//
// Replies follow their parent, siblings are ordered by date then ID, and
// top-level threads are ordered by their root. The input is not modified.
// On error no result is returned.
func Thread(comments []models.Comment) ([]models.ThreadedComment, error) {
	n := len(comments)
	index := make(map[string]int, n)
	for i := range comments {
		id := comments[i].ID
		if _, found := index[id]; found {
			return nil, &DuplicateIDError{ID: id}
		}
		index[id] = i
	}

	parents := make([]int, n)
	for i := range comments {
		parents[i] = -1
		if !comments[i].IsReply() {
			continue
		}
		p, found := index[comments[i].ReplyingToID]
		if !found {
			return nil, &DanglingReferenceError{ID: comments[i].ID, ReplyingToID: comments[i].ReplyingToID}
		}
		parents[i] = p
	}

	// Walk each chain up until it reaches a top-level comment or a record
	// already proven acyclic. Every record is visited once.
	const (
		unvisited = iota
		onChain
		done
	)
	state := make([]int, n)
	for i := range comments {
		var chain []int
		for cur := i; cur != -1 && state[cur] != done; cur = parents[cur] {
			if state[cur] == onChain {
				pos := slices.Index(chain, cur)
				return nil, cycleError(comments, chain[pos:])
			}
			state[cur] = onChain
			chain = append(chain, cur)
		}
		for _, c := range chain {
			state[c] = done
		}
	}

	var roots []int
	children := make([][]int, n)
	for i, p := range parents {
		if p == -1 {
			roots = append(roots, i)
		} else {
			children[p] = append(children[p], i)
		}
	}
	less := siblingLess(comments)
	slices.SortFunc(roots, less)
	for _, c := range children {
		slices.SortFunc(c, less)
	}

	// Pre-order walk; the stack holds records still to emit, the next one on top.
	result := make([]models.ThreadedComment, 0, n)
	position := make([]int, n)
	depth := make([]int, n)
	stack := make([]int, 0, len(roots))
	for k := len(roots) - 1; k >= 0; k-- {
		stack = append(stack, roots[k])
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		parent := -1
		if parents[i] != -1 {
			parent = position[parents[i]]
			depth[i] = depth[parents[i]] + 1
		}
		position[i] = len(result)
		result = append(result, models.ThreadedComment{
			Comment: comments[i],
			Depth:   depth[i],
			Parent:  parent,
		})

		kids := children[i]
		for k := len(kids) - 1; k >= 0; k-- {
			stack = append(stack, kids[k])
		}
	}
	return result, nil
}

// cycleError lists the cycle starting from its smallest ID so the message is
// stable regardless of which member the walk started from.
func cycleError(comments []models.Comment, cycle []int) error {
	start := 0
	for k := range cycle {
		if comments[cycle[k]].ID < comments[cycle[start]].ID {
			start = k
		}
	}
	ids := make([]string, 0, len(cycle))
	for k := range cycle {
		ids = append(ids, comments[cycle[(start+k)%len(cycle)]].ID)
	}
	return &CyclicReferenceError{IDs: ids}
}
