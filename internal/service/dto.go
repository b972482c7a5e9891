package service

import (
	"encoding/json"
	"time"

	"github.com/homeboard/homeboard-backend/internal/domain"
)

// Data Transfer Objects shared by the HTTP layer and the services. Pointer
// fields distinguish "omitted" from "set to the zero value" so partial
// updates only touch what the client sent.

// GroupRef is a group reference with three states: key absent (leave the
// association untouched), explicit null or non-positive id (detach), positive
// id (attach after a visibility-scoped lookup).
type GroupRef struct {
	Present bool
	ID      *int64
}

func (g *GroupRef) UnmarshalJSON(b []byte) error {
	g.Present = true
	if string(b) == "null" {
		g.ID = nil
		return nil
	}
	return json.Unmarshal(b, &g.ID)
}

// Detach reports whether the reference asks to clear the association.
func (g GroupRef) Detach() bool {
	return g.ID == nil || *g.ID <= 0
}

// GroupsRef is the many-to-many variant used by recipes: absent leaves the
// associations untouched, null or an empty list detaches from all groups.
type GroupsRef struct {
	Present bool
	IDs     []int64
}

func (g *GroupsRef) UnmarshalJSON(b []byte) error {
	g.Present = true
	if string(b) == "null" {
		g.IDs = nil
		return nil
	}
	return json.Unmarshal(b, &g.IDs)
}

// UserRef names a user by id inside group edit requests.
type UserRef struct {
	ID uint `json:"id"`
}

// MultiDeleteItem is one entry of a bulk delete body.
type MultiDeleteItem struct {
	ID uint `json:"id"`
}

type TaskRequest struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
	Status      *bool  `json:"status"`
}

type TodoRequest struct {
	ID     uint           `json:"id"`
	Name   string         `json:"name"`
	Status *bool          `json:"status"`
	Group  GroupRef       `json:"group"`
	Tasks  *[]TaskRequest `json:"tasks"`
}

type NoteRequest struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Data  string   `json:"data"`
	Group GroupRef `json:"group"`
}

type RecipeRequest struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PreparationTime int       `json:"preparation_time"`
	NbPerson        int       `json:"nb_person"`
	Recipe          string    `json:"recipe"`
	Groups          GroupsRef `json:"groups"`
}

type ActRequest struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
	Comment     string `json:"comment"`
}

type ServicingRequest struct {
	ID        uint          `json:"id"`
	Kilometer int           `json:"kilometer"`
	Date      *time.Time    `json:"date"`
	Acts      *[]ActRequest `json:"acts"`
}

type VehicleRequest struct {
	ID             uint                `json:"id"`
	Brand          string              `json:"brand"`
	Model          string              `json:"model"`
	Identification string              `json:"identification"`
	Group          GroupRef            `json:"group"`
	Servicings     *[]ServicingRequest `json:"servicings"`
}

type GroupRequest struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type GroupEditRequest struct {
	Name  string     `json:"name"`
	Owner *UserRef   `json:"owner"`
	Users *[]UserRef `json:"users"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type EditUserRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// --- Responses ---
//
// Responses never carry the password hash or refresh secret. Group
// references inside entity responses are rendered by id only ("partial");
// the group endpoints render them fully.

type UserResponse struct {
	ID        uint       `json:"id"`
	Email     string     `json:"email,omitempty"`
	Username  string     `json:"username"`
	Role      string     `json:"role,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type GroupResponse struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Owner     *UserResponse  `json:"owner,omitempty"`
	Users     []UserResponse `json:"users,omitempty"`
}

type TaskResponse struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
	Status      bool   `json:"status"`
}

type TodoResponse struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Status    bool           `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Owner     *UserResponse  `json:"owner,omitempty"`
	Tasks     []TaskResponse `json:"tasks"`
	Group     *uint          `json:"group,omitempty"`
}

type NoteResponse struct {
	ID        uint          `json:"id"`
	Name      string        `json:"name"`
	Data      string        `json:"data"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Owner     *UserResponse `json:"owner,omitempty"`
	Group     *uint         `json:"group,omitempty"`
}

type RecipeResponse struct {
	ID              uint          `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	PreparationTime int           `json:"preparation_time"`
	NbPerson        int           `json:"nb_person"`
	Recipe          string        `json:"recipe"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Owner           *UserResponse `json:"owner,omitempty"`
	Groups          []uint        `json:"groups,omitempty"`
}

type ActResponse struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
	Comment     string `json:"comment,omitempty"`
}

type ServicingResponse struct {
	ID        uint          `json:"id"`
	Kilometer int           `json:"kilometer"`
	Date      *time.Time    `json:"date,omitempty"`
	Acts      []ActResponse `json:"acts"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type VehicleResponse struct {
	ID             uint                `json:"id"`
	Brand          string              `json:"brand"`
	Model          string              `json:"model"`
	Identification string              `json:"identification"`
	Servicings     []ServicingResponse `json:"servicings"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Owner          *UserResponse       `json:"owner,omitempty"`
	Group          *uint               `json:"group,omitempty"`
}

// --- Transformers ---

func toUserResponse(user *domain.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Phone:    user.Phone,
	}
}

func toUserSummary(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Username: user.Username, Role: user.Role}
}

func toGroupResponse(group *domain.Group) *GroupResponse {
	if group == nil {
		return nil
	}
	resp := &GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		CreatedAt: group.CreatedAt,
		UpdatedAt: group.UpdatedAt,
		Owner:     toUserResponse(group.Owner),
	}
	for _, u := range group.Users {
		resp.Users = append(resp.Users, *toUserResponse(u))
	}
	return resp
}

func groupID(group *domain.Group, id *uint) *uint {
	if group != nil {
		gid := group.ID
		return &gid
	}
	return id
}

func toTaskResponse(task domain.Task) TaskResponse {
	return TaskResponse{ID: task.ID, Description: task.Description, Status: task.Status}
}

func toTodoResponse(todo *domain.Todo) *TodoResponse {
	resp := &TodoResponse{
		ID:        todo.ID,
		Name:      todo.Name,
		Status:    todo.Status,
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
		Owner:     toUserResponse(todo.Owner),
		Tasks:     make([]TaskResponse, 0, len(todo.Tasks)),
		Group:     groupID(todo.Group, todo.GroupID),
	}
	for _, t := range todo.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(t))
	}
	return resp
}

func toNoteResponse(note *domain.Note) *NoteResponse {
	return &NoteResponse{
		ID:        note.ID,
		Name:      note.Name,
		Data:      note.Data,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		Owner:     toUserResponse(note.Owner),
		Group:     groupID(note.Group, note.GroupID),
	}
}

func toRecipeResponse(recipe *domain.CookingRecipe) *RecipeResponse {
	resp := &RecipeResponse{
		ID:              recipe.ID,
		Name:            recipe.Name,
		Description:     recipe.Description,
		PreparationTime: recipe.PreparationTime,
		NbPerson:        recipe.NbPerson,
		Recipe:          recipe.Recipe,
		CreatedAt:       recipe.CreatedAt,
		UpdatedAt:       recipe.UpdatedAt,
		Owner:           toUserResponse(recipe.Owner),
	}
	for _, g := range recipe.Groups {
		resp.Groups = append(resp.Groups, g.ID)
	}
	return resp
}

func toActResponse(act domain.Act) ActResponse {
	return ActResponse{ID: act.ID, Description: act.Description, Comment: act.Comment}
}

func toServicingResponse(servicing domain.Servicing) ServicingResponse {
	resp := ServicingResponse{
		ID:        servicing.ID,
		Kilometer: servicing.Kilometer,
		Acts:      make([]ActResponse, 0, len(servicing.Acts)),
		CreatedAt: servicing.CreatedAt,
		UpdatedAt: servicing.UpdatedAt,
	}
	if !servicing.Date.IsZero() {
		d := servicing.Date
		resp.Date = &d
	}
	for _, a := range servicing.Acts {
		resp.Acts = append(resp.Acts, toActResponse(a))
	}
	return resp
}

func toVehicleResponse(vehicle *domain.Vehicle) *VehicleResponse {
	resp := &VehicleResponse{
		ID:             vehicle.ID,
		Brand:          vehicle.Brand,
		Model:          vehicle.Model,
		Identification: vehicle.Identification,
		Servicings:     make([]ServicingResponse, 0, len(vehicle.Servicings)),
		CreatedAt:      vehicle.CreatedAt,
		UpdatedAt:      vehicle.UpdatedAt,
		Owner:          toUserResponse(vehicle.Owner),
		Group:          groupID(vehicle.Group, vehicle.GroupID),
	}
	for _, s := range vehicle.Servicings {
		resp.Servicings = append(resp.Servicings, toServicingResponse(s))
	}
	return resp
}
