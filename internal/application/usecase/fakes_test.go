package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/ucoffee-api/internal/domain"
	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
)

var errDB = errors.New("conexión rechazada")

type fakeProductRepo struct {
	items  map[int64]*entity.Product
	nextID int64
	err    error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{items: map[int64]*entity.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*entity.Product, 0, len(f.items))
	for _, p := range f.items {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := f.items[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeOrderRepo struct {
	recs   []*repository.OrderRecord
	nextID int64
}

func (f *fakeOrderRepo) Create(_ context.Context, rec *repository.OrderRecord) error {
	f.nextID++
	rec.Order.ID = f.nextID
	cp := *rec
	f.recs = append(f.recs, &cp)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*repository.OrderRecord, error) {
	for _, r := range f.recs {
		if r.Order.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) List(_ context.Context) ([]*repository.OrderRecord, error) {
	out := make([]*repository.OrderRecord, 0, len(f.recs))
	for i := len(f.recs) - 1; i >= 0; i-- {
		cp := *f.recs[i]
		out = append(out, &cp)
	}
	return out, nil
}

type fakeUserRepo struct {
	users []*entity.User
	err   error
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	u.ID = int64(len(f.users) + 1)
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	return f.users, f.err
}

type fakePDF struct {
	calledWith *entity.Order
}

func (f *fakePDF) GenerateOrderReceipt(_ context.Context, o *entity.Order) ([]byte, error) {
	f.calledWith = o
	return []byte("%PDF-1.3 fake"), nil
}
