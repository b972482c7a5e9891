package service

import (
	"context"

	"github.com/homeboard/homeboard-backend/internal/domain"
	"github.com/homeboard/homeboard-backend/internal/policy"
	"github.com/homeboard/homeboard-backend/internal/repository"
)

// NoteService implements the note workflows. Notes have no child collection,
// which makes this the simplest of the entity services.
type NoteService interface {
	Upsert(ctx context.Context, user *domain.User, req NoteRequest) (*NoteResponse, bool, error)
	Edit(ctx context.Context, user *domain.User, id uint, req NoteRequest) (*NoteResponse, error)
	GetByID(ctx context.Context, user *domain.User, id uint) (*NoteResponse, error)
	List(ctx context.Context, user *domain.User) ([]NoteResponse, error)
	Delete(ctx context.Context, user *domain.User, id uint) error
	MultiDelete(ctx context.Context, user *domain.User, items []MultiDeleteItem) error
}

type noteService struct {
	notes  repository.NoteRepository
	groups repository.GroupRepository
}

func NewNoteService(notes repository.NoteRepository, groups repository.GroupRepository) NoteService {
	return &noteService{notes: notes, groups: groups}
}

func (s *noteService) apply(ctx context.Context, user *domain.User, note *domain.Note, req NoteRequest) error {
	if req.Name != "" {
		note.Name = req.Name
	}
	if req.Data != "" {
		note.Data = req.Data
	}
	if req.Group.Present {
		group, err := resolveGroupRef(ctx, s.groups, req.Group, user.ID)
		if err != nil {
			return err
		}
		attachGroup(group, &note.GroupID, &note.Group)
	}
	return checkEntity(note)
}

func (s *noteService) Upsert(ctx context.Context, user *domain.User, req NoteRequest) (*NoteResponse, bool, error) {
	note := &domain.Note{OwnerID: user.ID, Owner: user}
	created := true

	if req.ID != 0 {
		found, err := s.notes.FindVisibleByID(ctx, req.ID, user.ID)
		if err != nil {
			return nil, false, notFound(err, "note", req.ID)
		}
		if !policy.CanAccess(user, found) {
			return nil, false, domain.ErrForbidden
		}
		note = found
		created = false
	}

	if err := s.apply(ctx, user, note, req); err != nil {
		return nil, false, err
	}
	if err := s.notes.Save(ctx, note); err != nil {
		return nil, false, mapStoreError(err)
	}
	return toNoteResponse(note), created, nil
}

func (s *noteService) Edit(ctx context.Context, user *domain.User, id uint, req NoteRequest) (*NoteResponse, error) {
	note, err := s.notes.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return nil, notFound(err, "note", id)
	}
	if !policy.CanAccess(user, note) {
		return nil, domain.ErrForbidden
	}
	if err := s.apply(ctx, user, note, req); err != nil {
		return nil, err
	}
	if err := s.notes.Save(ctx, note); err != nil {
		return nil, mapStoreError(err)
	}
	return toNoteResponse(note), nil
}

func (s *noteService) GetByID(ctx context.Context, user *domain.User, id uint) (*NoteResponse, error) {
	note, err := s.notes.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return nil, notFound(err, "note", id)
	}
	if !policy.CanAccess(user, note) {
		return nil, domain.ErrForbidden
	}
	return toNoteResponse(note), nil
}

func (s *noteService) List(ctx context.Context, user *domain.User) ([]NoteResponse, error) {
	notes, err := s.notes.FindAllVisible(ctx, user.ID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	out := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, *toNoteResponse(&notes[i]))
	}
	return out, nil
}

func (s *noteService) Delete(ctx context.Context, user *domain.User, id uint) error {
	note, err := s.notes.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return notFound(err, "note", id)
	}
	if !policy.CanDelete(user, note) {
		return domain.ErrForbidden
	}
	return mapStoreError(s.notes.SoftDelete(ctx, note.ID))
}

func (s *noteService) MultiDelete(ctx context.Context, user *domain.User, items []MultiDeleteItem) error {
	ids := deleteIDs(items)
	if len(ids) == 0 {
		return nil
	}
	return mapStoreError(s.notes.SoftDeleteVisible(ctx, ids, user.ID))
}
