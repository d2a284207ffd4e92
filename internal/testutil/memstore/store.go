// Package memstore implementa los puertos de repositorio en memoria para tests.
// Las transacciones de TxRunner se serializan y restauran el estado previo si fn falla.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

type state struct {
	components  map[string]entity.Component
	balances    map[string]entity.StockBalance
	movements   []entity.StockMovement
	foamTypes   map[string]entity.FoamType
	boms        map[string]entity.BillOfMaterials
	batches     map[string]entity.ProductionBatch
	consumption []entity.ComponentConsumption
	users       map[string]entity.User
}

func (s state) clone() state {
	c := state{
		components:  make(map[string]entity.Component, len(s.components)),
		balances:    make(map[string]entity.StockBalance, len(s.balances)),
		movements:   append([]entity.StockMovement(nil), s.movements...),
		foamTypes:   make(map[string]entity.FoamType, len(s.foamTypes)),
		boms:        make(map[string]entity.BillOfMaterials, len(s.boms)),
		batches:     make(map[string]entity.ProductionBatch, len(s.batches)),
		consumption: append([]entity.ComponentConsumption(nil), s.consumption...),
		users:       make(map[string]entity.User, len(s.users)),
	}
	for k, v := range s.components {
		c.components[k] = v
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.foamTypes {
		c.foamTypes[k] = v
	}
	for k, v := range s.boms {
		v.Components = append([]entity.BOMComponent(nil), v.Components...)
		c.boms[k] = v
	}
	for k, v := range s.batches {
		c.batches[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store base de datos en memoria.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   state

	// MovementCreateErr, si no es nil, hace fallar StockMovementRepository.Create.
	MovementCreateErr error
}

// New crea un Store vacío.
func New() *Store {
	return &Store{st: state{}.clone()}
}

// ── Acceso directo para tests ────────────────────────────────────────────────

// SeedComponent crea un componente activo con saldo inicial registrado como una entrada.
func (s *Store) SeedComponent(name string, balance decimal.Decimal) *entity.Component {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := entity.Component{ID: uuid.New().String(), Name: name, Active: true}
	s.st.components[c.ID] = c
	s.st.balances[c.ID] = entity.StockBalance{ComponentID: c.ID, Quantity: balance}
	if balance.GreaterThan(decimal.Zero) {
		s.st.movements = append(s.st.movements, entity.StockMovement{
			ID: uuid.New().String(), ComponentID: c.ID, Type: entity.MovementTypeEntrada, Quantity: balance,
		})
	}
	return &c
}

// SeedFoamType crea un tipo de espuma activo y, si hay componentes, su ficha técnica.
func (s *Store) SeedFoamType(name string, components ...*entity.Component) *entity.FoamType {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := entity.FoamType{ID: uuid.New().String(), Name: name, Active: true}
	s.st.foamTypes[f.ID] = f
	if len(components) > 0 {
		b := entity.BillOfMaterials{ID: uuid.New().String(), FoamTypeID: f.ID, FoamTypeName: f.Name}
		for i, c := range components {
			b.Components = append(b.Components, entity.BOMComponent{ComponentID: c.ID, ComponentName: c.Name, Position: i + 1})
		}
		s.st.boms[b.ID] = b
	}
	return &f
}

// SetBalance fuerza un saldo (simula desvío respecto de los movimientos).
func (s *Store) SetBalance(componentID string, q decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.balances[componentID] = entity.StockBalance{ComponentID: componentID, Quantity: q}
}

// Balance saldo actual de un componente.
func (s *Store) Balance(componentID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.balances[componentID].Quantity
}

// Movements copia del libro de movimientos.
func (s *Store) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockMovement(nil), s.st.movements...)
}

// BatchCount cantidad de blocos.
func (s *Store) BatchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.batches)
}

// ConsumptionCount cantidad de filas de consumo.
func (s *Store) ConsumptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.consumption)
}

// ── Repositorios ─────────────────────────────────────────────────────────────

func (s *Store) Components() repository.ComponentRepository { return componentRepo{s} }
func (s *Store) Balances() repository.StockBalanceRepository { return balanceRepo{s} }
func (s *Store) MovementsRepo() repository.StockMovementRepository { return movementRepo{s} }
func (s *Store) FoamTypes() repository.FoamTypeRepository { return foamTypeRepo{s} }
func (s *Store) BOMs() repository.BillOfMaterialsRepository { return bomRepo{s} }
func (s *Store) Batches() repository.ProductionBatchRepository { return batchRepo{s} }
func (s *Store) Users() repository.UserRepository { return userRepo{s} }
func (s *Store) Reports() repository.ReportRepository { return reportRepo{s} }

// ── TxRunner ─────────────────────────────────────────────────────────────────

func (s *Store) inTx(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()
	if err := fn(); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(_ context.Context, fn func(
	componentRepo repository.ComponentRepository,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
) error) error {
	return s.inTx(func() error { return fn(s.Components(), s.MovementsRepo(), s.Balances()) })
}

// RunProduction implementa production.ProductionTxRunner.
func (s *Store) RunProduction(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	batchRepo repository.ProductionBatchRepository,
) error) error {
	return s.inTx(func() error { return fn(s.MovementsRepo(), s.Balances(), s.Batches()) })
}

// ── componentes ──────────────────────────────────────────────────────────────

type componentRepo struct{ s *Store }

func (r componentRepo) Create(_ context.Context, c *entity.Component) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.st.components {
		if e.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.st.components[c.ID] = *c
	return nil
}

func (r componentRepo) GetByID(_ context.Context, id string) (*entity.Component, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.components[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r componentRepo) GetByName(_ context.Context, name string) (*entity.Component, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.st.components {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r componentRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Component, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Component
	for _, id := range ids {
		if c, ok := r.s.st.components[id]; ok {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r componentRepo) List(_ context.Context, onlyActive bool) ([]*entity.Component, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Component
	for _, c := range r.s.st.components {
		if onlyActive && !c.Active {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r componentRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.components[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Active = active
	r.s.st.components[id] = c
	return nil
}

// ── saldos ───────────────────────────────────────────────────────────────────

type balanceRepo struct{ s *Store }

func (r balanceRepo) Get(_ context.Context, componentID string) (*entity.StockBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.st.balances[componentID]
	if !ok {
		return &entity.StockBalance{ComponentID: componentID, Quantity: decimal.Zero}, nil
	}
	return &b, nil
}

func (r balanceRepo) GetForUpdate(ctx context.Context, componentID string) (*entity.StockBalance, error) {
	return r.Get(ctx, componentID)
}

// Upsert rechaza saldos negativos como el CHECK de stock_balances.
func (r balanceRepo) Upsert(_ context.Context, b *entity.StockBalance) error {
	if b.Quantity.IsNegative() {
		return fmt.Errorf("saldo negativo para %s: %s", b.ComponentID, b.Quantity)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.balances[b.ComponentID] = *b
	return nil
}

func (r balanceRepo) LockAll(_ context.Context) ([]*entity.StockBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockBalance
	for _, b := range r.s.st.balances {
		b := b
		out = append(out, &b)
	}
	return out, nil
}

func (r balanceRepo) ListWithComponents(_ context.Context) ([]repository.ComponentBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.ComponentBalance
	for _, c := range r.s.st.components {
		b, ok := r.s.st.balances[c.ID]
		if !ok {
			b = entity.StockBalance{ComponentID: c.ID, Quantity: decimal.Zero}
		}
		out = append(out, repository.ComponentBalance{Component: c, Balance: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Component.Name < out[j].Component.Name })
	return out, nil
}

// ── movimientos ──────────────────────────────────────────────────────────────

type movementRepo struct{ s *Store }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.MovementCreateErr != nil {
		return r.s.MovementCreateErr
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.st.movements = append(r.s.st.movements, *m)
	return nil
}

func (r movementRepo) ListByComponent(_ context.Context, componentID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for i := len(r.s.st.movements) - 1; i >= 0; i-- {
		m := r.s.st.movements[i]
		if m.ComponentID == componentID {
			out = append(out, &m)
		}
	}
	return page(out, limit, offset), nil
}

func (r movementRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.s.st.movements {
		if m.BatchID == batchID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r movementRepo) SignedTotals(_ context.Context) (map[string]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]decimal.Decimal{}
	for _, m := range r.s.st.movements {
		if m.Type == entity.MovementTypeEntrada {
			out[m.ComponentID] = out[m.ComponentID].Add(m.Quantity)
		} else {
			out[m.ComponentID] = out[m.ComponentID].Sub(m.Quantity)
		}
	}
	return out, nil
}

// ── tipos de espuma y fichas ─────────────────────────────────────────────────

type foamTypeRepo struct{ s *Store }

func (r foamTypeRepo) Create(_ context.Context, f *entity.FoamType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.st.foamTypes {
		if e.Name == f.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.st.foamTypes[f.ID] = *f
	return nil
}

func (r foamTypeRepo) GetByID(_ context.Context, id string) (*entity.FoamType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.st.foamTypes[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r foamTypeRepo) GetByName(_ context.Context, name string) (*entity.FoamType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.st.foamTypes {
		if f.Name == name {
			f := f
			return &f, nil
		}
	}
	return nil, nil
}

func (r foamTypeRepo) List(_ context.Context, withBOM bool) ([]*entity.FoamType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	hasBOM := map[string]bool{}
	for _, b := range r.s.st.boms {
		hasBOM[b.FoamTypeID] = true
	}
	var out []*entity.FoamType
	for _, f := range r.s.st.foamTypes {
		if withBOM && !hasBOM[f.ID] {
			continue
		}
		f := f
		out = append(out, &f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r foamTypeRepo) Update(_ context.Context, f *entity.FoamType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.foamTypes[f.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.foamTypes[f.ID] = *f
	return nil
}

type bomRepo struct{ s *Store }

func (r bomRepo) Create(_ context.Context, b *entity.BillOfMaterials) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.st.boms {
		if e.FoamTypeID == b.FoamTypeID {
			return domain.ErrDuplicate
		}
	}
	c := *b
	c.Components = append([]entity.BOMComponent(nil), b.Components...)
	r.s.st.boms[b.ID] = c
	return nil
}

func (r bomRepo) Update(_ context.Context, b *entity.BillOfMaterials) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.boms[b.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *b
	c.Components = append([]entity.BOMComponent(nil), b.Components...)
	r.s.st.boms[b.ID] = c
	return nil
}

func (r bomRepo) find(match func(entity.BillOfMaterials) bool) *entity.BillOfMaterials {
	for _, b := range r.s.st.boms {
		if match(b) {
			b.Components = append([]entity.BOMComponent(nil), b.Components...)
			if f, ok := r.s.st.foamTypes[b.FoamTypeID]; ok {
				b.FoamTypeName = f.Name
			}
			return &b
		}
	}
	return nil
}

func (r bomRepo) GetByID(_ context.Context, id string) (*entity.BillOfMaterials, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.find(func(b entity.BillOfMaterials) bool { return b.ID == id }), nil
}

func (r bomRepo) GetByFoamType(_ context.Context, foamTypeID string) (*entity.BillOfMaterials, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.find(func(b entity.BillOfMaterials) bool { return b.FoamTypeID == foamTypeID }), nil
}

func (r bomRepo) List(_ context.Context) ([]*entity.BillOfMaterials, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.BillOfMaterials
	for id := range r.s.st.boms {
		id := id
		out = append(out, r.find(func(b entity.BillOfMaterials) bool { return b.ID == id }))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FoamTypeName < out[j].FoamTypeName })
	return out, nil
}

// ── blocos ───────────────────────────────────────────────────────────────────

type batchRepo struct{ s *Store }

func (r batchRepo) Create(_ context.Context, b *entity.ProductionBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.st.batches {
		if e.Code == b.Code {
			return domain.ErrDuplicateBatchCode
		}
	}
	r.s.st.batches[b.ID] = *b
	return nil
}

func (r batchRepo) AddConsumption(_ context.Context, c *entity.ComponentConsumption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.consumption = append(r.s.st.consumption, *c)
	return nil
}

func (r batchRepo) GetByID(_ context.Context, id string) (*entity.ProductionBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.st.batches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r batchRepo) GetByCode(_ context.Context, code string) (*entity.ProductionBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.st.batches {
		if b.Code == code {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (r batchRepo) List(_ context.Context, limit, offset int) ([]*entity.ProductionBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProductionBatch
	for _, b := range r.s.st.batches {
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ProductionDate.Equal(out[j].ProductionDate) {
			return out[i].ProductionDate.After(out[j].ProductionDate)
		}
		return out[i].Code > out[j].Code
	})
	return page(out, limit, offset), nil
}

func (r batchRepo) ListConsumption(_ context.Context, batchID string) ([]*entity.ComponentConsumption, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ComponentConsumption
	for _, c := range r.s.st.consumption {
		if c.BatchID == batchID {
			c := c
			c.ComponentName = r.s.st.components[c.ComponentID].Name
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ComponentName < out[j].ComponentName })
	return out, nil
}

// ── usuarios ─────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.st.users {
		if strings.EqualFold(e.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.st.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.st.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r userRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Active = active
	r.s.st.users[id] = u
	return nil
}

func (r userRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	r.s.st.users[id] = u
	return nil
}

// ── reportes ─────────────────────────────────────────────────────────────────

type reportRepo struct{ s *Store }

func (r reportRepo) LoadProductionRows(_ context.Context) ([]repository.ProductionRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.ProductionRow
	for _, b := range r.s.st.batches {
		base := repository.ProductionRow{
			BatchID: b.ID, Code: b.Code, ProductionDate: b.ProductionDate, FoamType: b.FoamType,
			Color: b.Color, Height: b.Height, Conformity: b.Conformity, Notes: b.Notes,
		}
		found := false
		for _, c := range r.s.st.consumption {
			if c.BatchID != b.ID {
				continue
			}
			found = true
			row := base
			name := r.s.st.components[c.ComponentID].Name
			q := c.QuantityUsed
			row.Component = &name
			row.QuantityUsed = &q
			out = append(out, row)
		}
		if !found {
			out = append(out, base)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ProductionDate.Equal(out[j].ProductionDate) {
			return out[i].ProductionDate.After(out[j].ProductionDate)
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
