package domain

// Kind tags the closed set of business entities the access policy rules over.
type Kind string

const (
	KindTodo    Kind = "todo"
	KindNote    Kind = "note"
	KindRecipe  Kind = "recipe"
	KindVehicle Kind = "vehicle"
	KindGroup   Kind = "group"
)

// BusinessEntity is the capability surface the access policy needs from an
// entity: who owns it and which users can see it through group sharing.
// Implementations return the live association state, so the policy never
// touches the database.
type BusinessEntity interface {
	EntityKind() Kind
	OwnerUserID() uint
	GroupUserIDs() []uint
}
