package resource

import "context"

// Kinds served by the EightySeven API.
const (
	KindPasswordStore  = "passwordstore"
	KindPasswordRecord = "passwordrecord"
)

// PasswordStore groups password records on the server.
type PasswordStore struct {
	*Resource
}

// NewPasswordStore returns an unsaved store.
func NewPasswordStore(t Transport) *PasswordStore {
	return &PasswordStore{Resource: New(t, KindPasswordStore)}
}

// NewPasswordStoreFrom decodes server data into a store.
func NewPasswordStoreFrom(t Transport, data any) (*PasswordStore, error) {
	r, err := Decode(t, KindPasswordStore, data)
	if err != nil {
		return nil, err
	}
	return &PasswordStore{Resource: r}, nil
}

// FetchPasswordStore loads the store with id.
func FetchPasswordStore(ctx context.Context, t Transport, id string) (*PasswordStore, error) {
	r, err := Fetch(ctx, t, KindPasswordStore, id)
	if err != nil {
		return nil, err
	}
	return &PasswordStore{Resource: r}, nil
}

// ListPasswordStores loads every store visible to the caller.
func ListPasswordStores(ctx context.Context, t Transport) ([]*PasswordStore, error) {
	rs, err := List(ctx, t, KindPasswordStore)
	if err != nil {
		return nil, err
	}
	out := make([]*PasswordStore, len(rs))
	for i, r := range rs {
		out[i] = &PasswordStore{Resource: r}
	}
	return out, nil
}

func (s *PasswordStore) Name() (string, error)        { return s.StringField("name") }
func (s *PasswordStore) SetName(v string)             { s.SetField("name", v) }
func (s *PasswordStore) Description() (string, error) { return s.StringField("description") }
func (s *PasswordStore) SetDescription(v string)      { s.SetField("description", v) }

// PasswordRecord is a single credential kept in a PasswordStore.
type PasswordRecord struct {
	*Resource
}

// NewPasswordRecord returns an unsaved record.
func NewPasswordRecord(t Transport) *PasswordRecord {
	return &PasswordRecord{Resource: New(t, KindPasswordRecord)}
}

// NewPasswordRecordFrom decodes server data into a record.
func NewPasswordRecordFrom(t Transport, data any) (*PasswordRecord, error) {
	r, err := Decode(t, KindPasswordRecord, data)
	if err != nil {
		return nil, err
	}
	return &PasswordRecord{Resource: r}, nil
}

// FetchPasswordRecord loads the record with id.
func FetchPasswordRecord(ctx context.Context, t Transport, id string) (*PasswordRecord, error) {
	r, err := Fetch(ctx, t, KindPasswordRecord, id)
	if err != nil {
		return nil, err
	}
	return &PasswordRecord{Resource: r}, nil
}

// ListPasswordRecords loads every record visible to the caller.
func ListPasswordRecords(ctx context.Context, t Transport) ([]*PasswordRecord, error) {
	rs, err := List(ctx, t, KindPasswordRecord)
	if err != nil {
		return nil, err
	}
	out := make([]*PasswordRecord, len(rs))
	for i, r := range rs {
		out[i] = &PasswordRecord{Resource: r}
	}
	return out, nil
}

// Store returns the id of the owning PasswordStore.
func (p *PasswordRecord) Store() (string, error) { return p.StringField("store") }
func (p *PasswordRecord) SetStore(id string)     { p.SetField("store", id) }

func (p *PasswordRecord) Title() (string, error)    { return p.StringField("title") }
func (p *PasswordRecord) SetTitle(v string)         { p.SetField("title", v) }
func (p *PasswordRecord) Username() (string, error) { return p.StringField("username") }
func (p *PasswordRecord) SetUsername(v string)      { p.SetField("username", v) }
func (p *PasswordRecord) Password() (string, error) { return p.StringField("password") }
func (p *PasswordRecord) SetPassword(v string)      { p.SetField("password", v) }
func (p *PasswordRecord) Link() (string, error)     { return p.StringField("url") }
func (p *PasswordRecord) SetLink(v string)          { p.SetField("url", v) }
func (p *PasswordRecord) Notes() (string, error)    { return p.StringField("notes") }
func (p *PasswordRecord) SetNotes(v string)         { p.SetField("notes", v) }
