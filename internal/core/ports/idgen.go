package ports

// IDGenerator produces collision-free identifiers. It is safe for concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=idgen.go -destination=mocks/mock_idgen.go -package=mocks
type IDGenerator interface {
	NewID() string
}
