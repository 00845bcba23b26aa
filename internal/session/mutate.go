package session

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/alexanderramin/actlog/internal/tree"
)

// confirmChange gates every structural mutation.
func (s *Session) confirmChange(ctx context.Context) (bool, error) {
	answer, err := s.prompt.AskChoice(ctx, "You are about to change your schema, are you sure?", yesNo)
	if err != nil {
		return false, err
	}
	if answer != answerYes {
		fmt.Fprintln(s.out, "Schema left unchanged.")
		return false, nil
	}
	return true, nil
}

// addLeaf adds a zero leaf under branch after confirmation. Invalid or
// duplicate names are rejected before asking.
func (s *Session) addLeaf(ctx context.Context, branch *tree.Node, path domain.Path, name string) (err error) {
	if err := tree.ValidateName(name); err != nil {
		return err
	}
	if _, exists := branch.Child(name); exists {
		return fmt.Errorf("option %q already exists: %w", name, domain.ErrInvalidInput)
	}

	ok, err := s.confirmChange(ctx)
	if err != nil || !ok {
		return err
	}

	fields := map[string]any{"path": path.String(), "name": name}
	defer s.observe(ctx, "add_leaf", time.Now(), fields, &err)

	if err := tree.AddLeaf(branch, name); err != nil {
		return err
	}
	return s.history.NoteChange(ctx, domain.ChangeAddLeaf, path, name)
}

// expandLeaf splits the awaited leaf into a branch holding its old value and
// a new zero sibling, then moves the cursor into that branch. The primary
// option is refused before any confirmation is asked.
func (s *Session) expandLeaf(ctx context.Context, cur *cursor, sibling string) (err error) {
	if err := tree.CheckExpand(cur.branch, cur.leaf, sibling); err != nil {
		return err
	}

	ok, err := s.confirmChange(ctx)
	if err != nil || !ok {
		return err
	}

	leafPath := cur.leafPath()
	fields := map[string]any{"path": leafPath.String(), "sibling": sibling}
	defer s.observe(ctx, "expand_leaf", time.Now(), fields, &err)

	if err := tree.ExpandLeaf(cur.branch, cur.leaf, sibling); err != nil {
		return err
	}
	expanded, _ := cur.branch.Child(cur.leaf)
	cur.branch = expanded
	cur.path = leafPath
	cur.leaf = ""

	return s.history.RelabelExpanded(ctx, leafPath, sibling)
}
