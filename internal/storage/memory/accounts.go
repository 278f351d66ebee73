package memory

import (
	"context"

	interfaces "github.com/sheikh-saqib/bank-api/internal/interfaces"
	"github.com/sheikh-saqib/bank-api/internal/models"
)

// accountRepo works on the state of a running unit of work, or on the store
// directly, in which case each call is its own unit of work.
type accountRepo struct {
	store *MemoryStore
	state *state
}

func (r *accountRepo) run(ctx context.Context, fn func(st *state) error) error {
	if r.state != nil {
		return fn(r.state)
	}
	return r.store.apply(ctx, fn)
}

// read is run for lookups: outside a unit of work it skips the copy-on-write path
func (r *accountRepo) read(ctx context.Context, fn func(st *state) error) error {
	if r.state != nil {
		return fn(r.state)
	}
	return r.store.view(ctx, fn)
}

func (r *accountRepo) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	var found *models.Account
	err := r.read(ctx, func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return models.ErrNotFound
		}
		found = &a
		return nil
	})
	return found, err
}

func (r *accountRepo) FindAll(ctx context.Context) ([]models.Account, error) {
	var result []models.Account
	err := r.read(ctx, func(st *state) error {
		result = make([]models.Account, 0, len(st.order))
		for _, id := range st.order {
			result = append(result, st.accounts[id])
		}
		return nil
	})
	return result, err
}

func (r *accountRepo) GetByNumber(ctx context.Context, number int64) (*models.Account, error) {
	var found *models.Account
	err := r.read(ctx, func(st *state) error {
		for _, id := range st.order {
			if a := st.accounts[id]; a.Number == number {
				found = &a
				return nil
			}
		}
		return models.ErrNotFound
	})
	return found, err
}

func (r *accountRepo) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	var saved models.Account
	err := r.run(ctx, func(st *state) error {
		for _, id := range st.order {
			if id != account.ID && st.accounts[id].Number == account.Number {
				return models.ErrDuplicateNumber
			}
		}

		saved = *account
		if saved.ID == 0 {
			saved.ID = st.nextID
			st.nextID++
			st.order = append(st.order, saved.ID)
		} else if _, ok := st.accounts[saved.ID]; !ok {
			return models.ErrNotFound
		}
		st.accounts[saved.ID] = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *accountRepo) DeleteByID(ctx context.Context, id int64) error {
	return r.run(ctx, func(st *state) error {
		if _, ok := st.accounts[id]; !ok {
			return models.ErrNotFound
		}
		delete(st.accounts, id)
		for i, each := range st.order {
			if each == id {
				st.order = append(st.order[:i:i], st.order[i+1:]...)
				break
			}
		}
		return nil
	})
}

var _ interfaces.AccountRepository = (*accountRepo)(nil)
