package handlers

// UsersStore is the full user persistence surface the router wires up once;
// individual handlers depend on narrower slices of it.
type UsersStore interface {
	UserReader
	UserWriter
	ProfileStore
	UserAdminStore
}
