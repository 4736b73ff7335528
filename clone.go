package hhsav

// Cloner allows types to provide deep copy logic.
// Implementing this interface is required for use with View.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value. Masking writes into slices and maps of
// the clone, so those must be copied too:
//
//	func (a Account) Clone() Account {
//	    tags := make([]string, len(a.Tags))
//	    copy(tags, a.Tags)
//	    a.Tags = tags
//	    return a
//	}
//
// For simple value types with no pointers, slices, or maps, Clone can simply
// return the receiver value:
//
//	func (a Account) Clone() Account { return a }
type Cloner[T any] interface {
	Clone() T
}
