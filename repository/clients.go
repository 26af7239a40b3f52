package repository

import (
	"time"

	"go.uber.org/zap"

	"glambook-backend/logger"
	"glambook-backend/models"
	"glambook-backend/storage"
	"glambook-backend/utils"
)

const (
	clientsKey        = "clients"
	clientsChangesKey = "clients-changes"
)

// ClientRepository manages the tenant's client list. Clients are created on
// first booking and never hard-deleted.
type ClientRepository struct {
	st  *storage.ScopedStore
	log *zap.Logger
}

func NewClientRepository(st *storage.ScopedStore) *ClientRepository {
	return &ClientRepository{st: st, log: logger.Get()}
}

func (r *ClientRepository) GetAll() []models.Client {
	return loadCollection[models.Client](r.st, clientsKey, r.log)
}

func (r *ClientRepository) GetByID(id string) *models.Client {
	for _, c := range r.GetAll() {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

// GetByPhone matches on the normalized phone; the booking flow uses it to
// reuse an existing client instead of creating a duplicate.
func (r *ClientRepository) GetByPhone(phone string) *models.Client {
	for _, c := range r.GetAll() {
		if c.Phone == phone {
			return &c
		}
	}
	return nil
}

func (r *ClientRepository) Create(partial models.Client, actor string) (*models.Client, Result) {
	now := time.Now()
	partial.ID = nextID()
	partial.State = models.LifecycleActive
	partial.CreatedAt = now
	partial.UpdatedAt = now
	res := r.Save(partial, actor)
	if !res.Success {
		return nil, res
	}
	return &partial, res
}

// Save upserts by id, appending a field-level change record for every mutable
// field that differs from the stored version.
func (r *ClientRepository) Save(client models.Client, actor string) Result {
	if client.FullName == "" {
		return Fail("client name is required")
	}
	if len(client.FullName) > 120 {
		return Fail("client name must be at most 120 characters")
	}
	if client.Phone != "" && !utils.ValidatePhone(client.Phone) {
		return Fail("invalid phone number format")
	}

	clients := r.GetAll()
	client.UpdatedAt = time.Now()
	replaced := false
	for i, existing := range clients {
		if existing.ID != client.ID {
			continue
		}
		changes := diffFields(client.ID, actor,
			clientFields(existing), clientFields(client))
		if len(changes) > 0 {
			if err := saveCollection(r.st, clientsChangesKey,
				append(loadCollection[models.ChangeRecord](r.st, clientsChangesKey, r.log), changes...), r.log); err != nil {
				return Fail(ErrStorage)
			}
		}
		client.CreatedAt = existing.CreatedAt
		clients[i] = client
		replaced = true
		break
	}
	if !replaced {
		clients = append(clients, client)
	}
	if err := saveCollection(r.st, clientsKey, clients, r.log); err != nil {
		return Fail(ErrStorage)
	}
	return OK()
}

// Changes returns the client change sublog.
func (r *ClientRepository) Changes() []models.ChangeRecord {
	return loadCollection[models.ChangeRecord](r.st, clientsChangesKey, r.log)
}

func clientFields(c models.Client) map[string]interface{} {
	return map[string]interface{}{
		"fullName": c.FullName,
		"phone":    c.Phone,
		"email":    c.Email,
		"notes":    c.Notes,
		"state":    c.State,
	}
}
