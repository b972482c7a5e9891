package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/homeboard/homeboard-backend/internal/domain"
)

// Integration tests against a disposable PostgreSQL container. One container
// is shared by the whole package run; each test works with its own users, so
// rows never collide.

var (
	dbOnce   sync.Once
	sharedDB *gorm.DB
	dbErr    error
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed repository tests in short mode")
	}

	dbOnce.Do(func() {
		sharedDB, dbErr = startPostgres()
	})
	if dbErr != nil {
		t.Fatalf("setting up test database: %v", dbErr)
	}
	return sharedDB
}

func startPostgres() (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("connection string: %w", err)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Group{},
		&domain.Todo{},
		&domain.Task{},
		&domain.Note{},
		&domain.CookingRecipe{},
		&domain.Vehicle{},
		&domain.Servicing{},
		&domain.Act{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return db, nil
}

func createUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:         name + "-" + uuid.NewString() + "@example.com",
		Username:      name + "-" + uuid.NewString()[:8],
		Password:      "x",
		RefreshSecret: uuid.NewString(),
		Role:          domain.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createGroup(t *testing.T, db *gorm.DB, owner *domain.User, members ...*domain.User) *domain.Group {
	t.Helper()
	group := &domain.Group{
		Name:    "household-" + uuid.NewString()[:8],
		OwnerID: owner.ID,
		Users:   append([]*domain.User{owner}, members...),
	}
	require.NoError(t, db.Create(group).Error)
	return group
}

func TestTodoVisibilityScoping(t *testing.T) {
	db := testDB(t)
	repo := NewGormTodoRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	group := createGroup(t, db, alice, bob)

	private := &domain.Todo{Name: "alice private", OwnerID: alice.ID}
	require.NoError(t, repo.Save(ctx, private))
	shared := &domain.Todo{Name: "alice shared", OwnerID: alice.ID, GroupID: &group.ID}
	require.NoError(t, repo.Save(ctx, shared))
	bobs := &domain.Todo{Name: "bob private", OwnerID: bob.ID}
	require.NoError(t, repo.Save(ctx, bobs))

	// bob sees his own todo and the one shared through the group
	visible, err := repo.FindAllVisible(ctx, bob.ID)
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, todo := range visible {
		names[todo.Name] = true
	}
	assert.True(t, names["alice shared"])
	assert.True(t, names["bob private"])
	assert.False(t, names["alice private"])

	// a direct lookup outside the scope fails like a missing row
	_, err = repo.FindVisibleByID(ctx, private.ID, bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindVisibleByID(ctx, shared.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Group)
	assert.Len(t, found.Group.Users, 2)
}

func TestTodoSaveReplacesTasks(t *testing.T) {
	db := testDB(t)
	repo := NewGormTodoRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	todo := &domain.Todo{
		Name:    "chores",
		OwnerID: alice.ID,
		Tasks: []domain.Task{
			{Description: "vacuum"},
			{Description: "dishes"},
		},
	}
	require.NoError(t, repo.Save(ctx, todo))
	require.Len(t, todo.Tasks, 2)
	keptID := todo.Tasks[0].ID

	// keep the first task (patched), drop the second, add a new one
	todo.Tasks = []domain.Task{
		{ID: keptID, Description: "vacuum upstairs", TodoID: todo.ID},
		{Description: "laundry"},
	}
	require.NoError(t, repo.Save(ctx, todo))

	reloaded, err := repo.FindVisibleByID(ctx, todo.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Tasks, 2)

	byID := make(map[uint]string)
	for _, task := range reloaded.Tasks {
		byID[task.ID] = task.Description
	}
	// the kept task kept its id across the round trip
	assert.Equal(t, "vacuum upstairs", byID[keptID])
	assert.Contains(t, byID, keptID)
}

func TestSoftDeletedTodoInvisibleButRetained(t *testing.T) {
	db := testDB(t)
	repo := NewGormTodoRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	todo := &domain.Todo{Name: "ephemeral", OwnerID: alice.ID, Tasks: []domain.Task{{Description: "x"}}}
	require.NoError(t, repo.Save(ctx, todo))

	require.NoError(t, repo.SoftDelete(ctx, todo.ID))

	_, err := repo.FindVisibleByID(ctx, todo.ID, alice.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the row survives with a deletion timestamp, as do its tasks
	var raw domain.Todo
	require.NoError(t, db.Unscoped().First(&raw, todo.ID).Error)
	assert.True(t, raw.DeletedAt.Valid)

	var taskCount int64
	require.NoError(t, db.Model(&domain.Task{}).Where("todo_id = ?", todo.ID).Count(&taskCount).Error)
	assert.Zero(t, taskCount)
}

func TestSoftDeleteVisibleSkipsForeignRows(t *testing.T) {
	db := testDB(t)
	repo := NewGormTodoRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	mine := &domain.Todo{Name: "mine", OwnerID: alice.ID}
	require.NoError(t, repo.Save(ctx, mine))
	theirs := &domain.Todo{Name: "theirs", OwnerID: bob.ID}
	require.NoError(t, repo.Save(ctx, theirs))

	require.NoError(t, repo.SoftDeleteVisible(ctx, []uint{mine.ID, theirs.ID}, alice.ID))

	_, err := repo.FindVisibleByID(ctx, mine.ID, alice.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	still, err := repo.FindVisibleByID(ctx, theirs.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "theirs", still.Name)
}

func TestVehicleSaveReplacesTwoLevels(t *testing.T) {
	db := testDB(t)
	repo := NewGormVehicleRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	vehicle := &domain.Vehicle{
		Brand:   "Renault",
		Model:   "Clio",
		OwnerID: alice.ID,
		Servicings: []domain.Servicing{
			{Kilometer: 15000, Acts: []domain.Act{{Description: "oil change"}, {Description: "brake pads"}}},
			{Kilometer: 30000},
		},
	}
	require.NoError(t, repo.Save(ctx, vehicle))
	require.Len(t, vehicle.Servicings, 2)
	keptServicing := vehicle.Servicings[0]
	keptAct := keptServicing.Acts[0]

	// drop the second servicing, keep the first with one act replaced
	vehicle.Servicings = []domain.Servicing{
		{
			ID:        keptServicing.ID,
			Kilometer: 16000,
			VehicleID: vehicle.ID,
			Acts: []domain.Act{
				{ID: keptAct.ID, Description: "oil change 5w30", ServicingID: keptServicing.ID},
				{Description: "air filter"},
			},
		},
	}
	require.NoError(t, repo.Save(ctx, vehicle))

	reloaded, err := repo.FindVisibleByID(ctx, vehicle.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Servicings, 1)
	assert.Equal(t, 16000, reloaded.Servicings[0].Kilometer)
	assert.Equal(t, keptServicing.ID, reloaded.Servicings[0].ID)

	require.Len(t, reloaded.Servicings[0].Acts, 2)
	descriptions := []string{reloaded.Servicings[0].Acts[0].Description, reloaded.Servicings[0].Acts[1].Description}
	assert.Contains(t, descriptions, "oil change 5w30")
	assert.Contains(t, descriptions, "air filter")
}

func TestGroupSaveReplacesMembership(t *testing.T) {
	db := testDB(t)
	repo := NewGormGroupRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	group := createGroup(t, db, alice, bob)

	group.Users = []*domain.User{alice, carol}
	require.NoError(t, repo.Save(ctx, group))

	reloaded, err := repo.FindVisibleByID(ctx, group.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Users, 2)

	ids := []uint{reloaded.Users[0].ID, reloaded.Users[1].ID}
	assert.Contains(t, ids, alice.ID)
	assert.Contains(t, ids, carol.ID)
	assert.NotContains(t, ids, bob.ID)

	// bob lost his visibility with his membership
	_, err = repo.FindVisibleByID(ctx, group.ID, bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecipeDuplicateNameTranslatesToConflict(t *testing.T) {
	db := testDB(t)
	repo := NewGormRecipeRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	name := "ratatouille-" + uuid.NewString()[:8]

	first := &domain.CookingRecipe{Name: name, OwnerID: alice.ID}
	require.NoError(t, repo.Save(ctx, first))

	dup := &domain.CookingRecipe{Name: name, OwnerID: alice.ID}
	err := repo.Save(ctx, dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRecipeVisibilityThroughGroups(t *testing.T) {
	db := testDB(t)
	repo := NewGormRecipeRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	group := createGroup(t, db, alice, bob)

	recipe := &domain.CookingRecipe{
		Name:    "gratin-" + uuid.NewString()[:8],
		OwnerID: alice.ID,
		Groups:  []*domain.Group{group},
	}
	require.NoError(t, repo.Save(ctx, recipe))

	found, err := repo.FindVisibleByID(ctx, recipe.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.Name, found.Name)

	// detach the group and bob loses sight of it
	recipe.Groups = nil
	require.NoError(t, repo.Save(ctx, recipe))

	_, err = repo.FindVisibleByID(ctx, recipe.ID, bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
