// Package collection provides an ordered, mutable, observable container.
//
// A Collection keeps items in order, indexes them by a caller-supplied key and
// emits an event for every structural change: insert, remove, reset (replace
// all) and sort (reorder). Handlers run synchronously in a fixed order (see
// types.Phase) and a mutation call returns only after every handler, including
// handlers of nested mutations, has finished.
//
// Collection is the storage primitive for both sides of a pagination.Pager: the
// full collection the application owns and the window the pager materializes.
//
// Example:
//
//	people, _ := collection.New(func(p Person) string { return p.ID }, nil)
//	people.On(types.EventInsert, func(ev types.Event[Person]) error {
//	    fmt.Println("added", ev.Item.Name, "at", ev.Index)
//	    return nil
//	})
//	_ = people.Insert(Person{ID: "42", Name: "Ada"})
package collection
