package http

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/ucoffee-api/internal/domain"
	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
)

// memDB base de datos en memoria que implementa los repositorios y el TxRunner de cuentas.
type memDB struct {
	mu       sync.Mutex
	users    []*entity.User
	roles    map[string]int64
	assigns  map[int64][]string
	products map[int64]*entity.Product
	nextProd int64
	orders   []repository.OrderRecord
}

func newMemDB() *memDB {
	return &memDB{
		roles:    map[string]int64{entity.RoleAdmin: 1, entity.RoleCustomer: 2},
		assigns:  map[int64][]string{},
		products: map[int64]*entity.Product{},
	}
}

func (db *memDB) withRoles(u *entity.User) *entity.User {
	cp := *u
	cp.Roles = append([]string(nil), db.assigns[u.ID]...)
	return &cp
}

type memUsers struct{ db *memDB }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	u.ID = int64(len(r.db.users) + 1)
	u.RegisteredAt = time.Now()
	r.db.users = append(r.db.users, u)
	return nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return r.db.withRoles(u), nil
		}
	}
	return nil, nil
}

func (r memUsers) List(_ context.Context) ([]*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*entity.User, 0, len(r.db.users))
	for i := len(r.db.users) - 1; i >= 0; i-- {
		out = append(out, r.db.withRoles(r.db.users[i]))
	}
	return out, nil
}

type memRoles struct{ db *memDB }

func (r memRoles) FindByName(_ context.Context, name string) (*entity.Role, error) {
	id, ok := r.db.roles[name]
	if !ok {
		return nil, nil
	}
	return &entity.Role{ID: id, Name: name}, nil
}

func (r memRoles) Assign(_ context.Context, userID, roleID int64) error {
	for name, id := range r.db.roles {
		if id == roleID {
			r.db.assigns[userID] = append(r.db.assigns[userID], name)
		}
	}
	return nil
}

// RunAccount serializa la transacción con el mutex y descarta los usuarios creados si fn falla.
func (db *memDB) RunAccount(_ context.Context, fn func(repository.UserRepository, repository.RoleRepository) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	before := len(db.users)
	if err := fn(memUsers{db}, memRoles{db}); err != nil {
		db.users = db.users[:before]
		return err
	}
	return nil
}

// addUser crea un usuario directamente con los roles dados.
func (db *memDB) addUser(name, email, hash, status string, roles ...string) *entity.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	u := &entity.User{ID: int64(len(db.users) + 1), FullName: name, Email: email, PasswordHash: hash, Status: status, RegisteredAt: time.Now()}
	db.users = append(db.users, u)
	db.assigns[u.ID] = roles
	return u
}

type memProducts struct{ db *memDB }

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.nextProd++
	p.ID = r.db.nextProd
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r memProducts) List(_ context.Context) ([]*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.db.products))
	for _, p := range r.db.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r memProducts) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.db.products, id)
	return nil
}

type memOrders struct{ db *memDB }

func (r memOrders) Create(_ context.Context, rec *repository.OrderRecord) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rec.Order.ID = int64(len(r.db.orders) + 1)
	rec.Order.CreatedAt = time.Now()
	r.db.orders = append(r.db.orders, *rec)
	return nil
}

func (r memOrders) GetByID(_ context.Context, id int64) (*repository.OrderRecord, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range r.db.orders {
		if r.db.orders[i].Order.ID == id {
			cp := r.db.orders[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memOrders) List(_ context.Context) ([]*repository.OrderRecord, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*repository.OrderRecord, 0, len(r.db.orders))
	for i := len(r.db.orders) - 1; i >= 0; i-- {
		cp := r.db.orders[i]
		out = append(out, &cp)
	}
	return out, nil
}
