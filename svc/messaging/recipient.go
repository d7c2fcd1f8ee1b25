package messaging

// RecipientKind names the active variant of a RecipientSpec.
type RecipientKind string

const (
	KindIndividual RecipientKind = "individual"
	KindCategory   RecipientKind = "category"
	KindMultiple   RecipientKind = "multiple"
	KindAll        RecipientKind = "all"
)

func (k RecipientKind) String() string {
	return string(k)
}

// RecipientSpec selects who a message goes to.
// It is implemented by IndividualSpec, CategorySpec, MultipleSpec and AllSpec only.
type RecipientSpec interface {
	Kind() RecipientKind
	sealed()
}

// IndividualSpec targets one contact.
type IndividualSpec struct {
	ContactID int64
}

// CategorySpec targets the members of a category.
type CategorySpec struct {
	CategoryID int64
}

// MultipleSpec targets a hand-picked list of contacts, in the given order.
type MultipleSpec struct {
	ContactIDs []int64
}

// AllSpec targets every contact in the catalog.
type AllSpec struct{}

func (IndividualSpec) Kind() RecipientKind { return KindIndividual }
func (CategorySpec) Kind() RecipientKind   { return KindCategory }
func (MultipleSpec) Kind() RecipientKind   { return KindMultiple }
func (AllSpec) Kind() RecipientKind        { return KindAll }

func (IndividualSpec) sealed() {}
func (CategorySpec) sealed()   {}
func (MultipleSpec) sealed()   {}
func (AllSpec) sealed()        {}

// ToContact targets a single contact.
func ToContact(id int64) RecipientSpec {
	return IndividualSpec{ContactID: id}
}

// ToCategory targets every member of a category.
func ToCategory(id int64) RecipientSpec {
	return CategorySpec{CategoryID: id}
}

// ToContacts targets an explicit list of contacts.
func ToContacts(ids ...int64) RecipientSpec {
	return MultipleSpec{ContactIDs: ids}
}

// ToAll targets every contact.
func ToAll() RecipientSpec {
	return AllSpec{}
}
