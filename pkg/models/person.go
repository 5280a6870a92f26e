package models

import "fmt"

// Field names used to map delimited tokens onto a Person.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
)

// DefaultFieldNames is the positional layout of an input line.
var DefaultFieldNames = []string{FieldFirstName, FieldLastName}

// Person is a single name record flowing through the import job.
// The zero value is a valid, empty record.
type Person struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
}

func NewPerson(firstName, lastName string) Person {
	return Person{FirstName: firstName, LastName: lastName}
}

func (p Person) String() string {
	return fmt.Sprintf("firstName: %s, lastName: %s", p.FirstName, p.LastName)
}
