package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/homeboard/homeboard-backend/internal/domain"
)

// In-memory repository fakes. They mirror the persistence contract the
// services rely on: visibility scoping on lookups, id assignment on save,
// and soft deletes recorded for assertions.

func memberOf(userID uint, group *domain.Group) bool {
	if group == nil {
		return false
	}
	for _, u := range group.Users {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// --- todos ---

type fakeTodoRepo struct {
	seq     uint
	todos   map[uint]*domain.Todo
	deleted []uint
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: make(map[uint]*domain.Todo)}
}

func (f *fakeTodoRepo) visible(t *domain.Todo, userID uint) bool {
	return t.OwnerID == userID || memberOf(userID, t.Group)
}

func (f *fakeTodoRepo) FindVisibleByID(ctx context.Context, id, userID uint) (*domain.Todo, error) {
	t, ok := f.todos[id]
	if !ok || !f.visible(t, userID) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTodoRepo) FindAllVisible(ctx context.Context, userID uint) ([]domain.Todo, error) {
	var out []domain.Todo
	for _, t := range f.todos {
		if f.visible(t, userID) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTodoRepo) Save(ctx context.Context, todo *domain.Todo) error {
	if todo.ID == 0 {
		f.seq++
		todo.ID = f.seq
	}
	for i := range todo.Tasks {
		if todo.Tasks[i].ID == 0 {
			f.seq++
			todo.Tasks[i].ID = f.seq
		}
		todo.Tasks[i].TodoID = todo.ID
	}
	stored := *todo
	f.todos[todo.ID] = &stored
	return nil
}

func (f *fakeTodoRepo) SoftDelete(ctx context.Context, id uint) error {
	delete(f.todos, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeTodoRepo) SoftDeleteVisible(ctx context.Context, ids []uint, userID uint) error {
	for _, id := range ids {
		if t, ok := f.todos[id]; ok && f.visible(t, userID) {
			delete(f.todos, id)
			f.deleted = append(f.deleted, id)
		}
	}
	return nil
}

// --- notes ---

type fakeNoteRepo struct {
	seq     uint
	notes   map[uint]*domain.Note
	deleted []uint
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uint]*domain.Note)}
}

func (f *fakeNoteRepo) visible(n *domain.Note, userID uint) bool {
	return n.OwnerID == userID || memberOf(userID, n.Group)
}

func (f *fakeNoteRepo) FindVisibleByID(ctx context.Context, id, userID uint) (*domain.Note, error) {
	n, ok := f.notes[id]
	if !ok || !f.visible(n, userID) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *n
	return &copied, nil
}

func (f *fakeNoteRepo) FindAllVisible(ctx context.Context, userID uint) ([]domain.Note, error) {
	var out []domain.Note
	for _, n := range f.notes {
		if f.visible(n, userID) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) Save(ctx context.Context, note *domain.Note) error {
	if note.ID == 0 {
		f.seq++
		note.ID = f.seq
	}
	stored := *note
	f.notes[note.ID] = &stored
	return nil
}

func (f *fakeNoteRepo) SoftDelete(ctx context.Context, id uint) error {
	delete(f.notes, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeNoteRepo) SoftDeleteVisible(ctx context.Context, ids []uint, userID uint) error {
	for _, id := range ids {
		if n, ok := f.notes[id]; ok && f.visible(n, userID) {
			delete(f.notes, id)
			f.deleted = append(f.deleted, id)
		}
	}
	return nil
}

// --- groups ---

type fakeGroupRepo struct {
	seq     uint
	groups  map[uint]*domain.Group
	deleted []uint
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[uint]*domain.Group)}
}

func (f *fakeGroupRepo) visible(g *domain.Group, userID uint) bool {
	return g.OwnerID == userID || memberOf(userID, g)
}

func (f *fakeGroupRepo) FindVisibleByID(ctx context.Context, id, userID uint) (*domain.Group, error) {
	g, ok := f.groups[id]
	if !ok || !f.visible(g, userID) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *g
	return &copied, nil
}

func (f *fakeGroupRepo) FindVisibleByIDs(ctx context.Context, ids []uint, userID uint) ([]*domain.Group, error) {
	var out []*domain.Group
	for _, id := range ids {
		if g, ok := f.groups[id]; ok && f.visible(g, userID) {
			copied := *g
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeGroupRepo) FindAllVisible(ctx context.Context, userID uint) ([]domain.Group, error) {
	var out []domain.Group
	for _, g := range f.groups {
		if f.visible(g, userID) {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGroupRepo) Save(ctx context.Context, group *domain.Group) error {
	if group.ID == 0 {
		f.seq++
		group.ID = f.seq
	}
	stored := *group
	f.groups[group.ID] = &stored
	return nil
}

func (f *fakeGroupRepo) SoftDelete(ctx context.Context, id uint) error {
	delete(f.groups, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeGroupRepo) SoftDeleteOwned(ctx context.Context, ids []uint, userID uint) error {
	for _, id := range ids {
		if g, ok := f.groups[id]; ok && g.OwnerID == userID {
			delete(f.groups, id)
			f.deleted = append(f.deleted, id)
		}
	}
	return nil
}

// --- recipes ---

type fakeRecipeRepo struct {
	seq     uint
	recipes map[uint]*domain.CookingRecipe
	deleted []uint
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[uint]*domain.CookingRecipe)}
}

func (f *fakeRecipeRepo) visible(r *domain.CookingRecipe, userID uint) bool {
	if r.OwnerID == userID {
		return true
	}
	for _, g := range r.Groups {
		if memberOf(userID, g) {
			return true
		}
	}
	return false
}

func (f *fakeRecipeRepo) FindVisibleByID(ctx context.Context, id, userID uint) (*domain.CookingRecipe, error) {
	r, ok := f.recipes[id]
	if !ok || !f.visible(r, userID) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRecipeRepo) FindAllVisible(ctx context.Context, userID uint) ([]domain.CookingRecipe, error) {
	var out []domain.CookingRecipe
	for _, r := range f.recipes {
		if f.visible(r, userID) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) Save(ctx context.Context, recipe *domain.CookingRecipe) error {
	for _, existing := range f.recipes {
		if existing.ID != recipe.ID && existing.Name == recipe.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if recipe.ID == 0 {
		f.seq++
		recipe.ID = f.seq
	}
	stored := *recipe
	f.recipes[recipe.ID] = &stored
	return nil
}

func (f *fakeRecipeRepo) SoftDelete(ctx context.Context, id uint) error {
	delete(f.recipes, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRecipeRepo) SoftDeleteVisible(ctx context.Context, ids []uint, userID uint) error {
	for _, id := range ids {
		if r, ok := f.recipes[id]; ok && f.visible(r, userID) {
			delete(f.recipes, id)
			f.deleted = append(f.deleted, id)
		}
	}
	return nil
}

// --- vehicles ---

type fakeVehicleRepo struct {
	seq      uint
	vehicles map[uint]*domain.Vehicle
	deleted  []uint
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[uint]*domain.Vehicle)}
}

func (f *fakeVehicleRepo) visible(v *domain.Vehicle, userID uint) bool {
	return v.OwnerID == userID || memberOf(userID, v.Group)
}

func (f *fakeVehicleRepo) FindVisibleByID(ctx context.Context, id, userID uint) (*domain.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok || !f.visible(v, userID) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVehicleRepo) FindAllVisible(ctx context.Context, userID uint) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	for _, v := range f.vehicles {
		if f.visible(v, userID) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVehicleRepo) Save(ctx context.Context, vehicle *domain.Vehicle) error {
	if vehicle.ID == 0 {
		f.seq++
		vehicle.ID = f.seq
	}
	for i := range vehicle.Servicings {
		s := &vehicle.Servicings[i]
		if s.ID == 0 {
			f.seq++
			s.ID = f.seq
		}
		s.VehicleID = vehicle.ID
		for j := range s.Acts {
			if s.Acts[j].ID == 0 {
				f.seq++
				s.Acts[j].ID = f.seq
			}
			s.Acts[j].ServicingID = s.ID
		}
	}
	stored := *vehicle
	f.vehicles[vehicle.ID] = &stored
	return nil
}

func (f *fakeVehicleRepo) SoftDelete(ctx context.Context, id uint) error {
	delete(f.vehicles, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeVehicleRepo) SoftDeleteVisible(ctx context.Context, ids []uint, userID uint) error {
	for _, id := range ids {
		if v, ok := f.vehicles[id]; ok && f.visible(v, userID) {
			delete(f.vehicles, id)
			f.deleted = append(f.deleted, id)
		}
	}
	return nil
}

// --- users ---

type fakeUserRepo struct {
	seq     uint
	users   map[uint]*domain.User
	deleted []uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User)}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByIDs(ctx context.Context, ids []uint) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SearchByUsername(ctx context.Context, fragment string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if containsSub(u.Username, fragment) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Save(ctx context.Context, user *domain.User) error {
	for _, existing := range f.users {
		if existing.ID != user.ID && existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == 0 {
		f.seq++
		user.ID = f.seq
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) SoftDelete(ctx context.Context, id uint) error {
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func containsSub(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

// --- mail ---

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) SendResetPasswordMail(to string) error {
	f.sent = append(f.sent, to)
	return nil
}

// --- fixtures ---

func testUser(id uint, name string) *domain.User {
	return &domain.User{
		ID:       id,
		Email:    name + "@example.com",
		Username: name,
		Role:     domain.RoleUser,
	}
}

func testGroup(id uint, owner *domain.User, members ...*domain.User) *domain.Group {
	return &domain.Group{
		ID:      id,
		Name:    "household",
		OwnerID: owner.ID,
		Owner:   owner,
		Users:   append([]*domain.User{owner}, members...),
	}
}
