package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
)

func newItemUseCase() (*memory.Store, *inventory.ItemUseCase) {
	store := memory.NewStore()
	return store, inventory.NewItemUseCase(store, store.ItemRepository(), store.ItemAssignmentRepository())
}

func mustCreate(t *testing.T, uc *inventory.ItemUseCase, name string, count int64) int64 {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.CreateItemRequest{Name: name, Count: count})
	require.NoError(t, err)
	return out.ID
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Alta y consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_StockInicial(t *testing.T) {
	ctx := context.Background()
	_, uc := newItemUseCase()

	chairs := mustCreate(t, uc, "Chairs", 100)
	beds := mustCreate(t, uc, "Beds", 55)
	tables := mustCreate(t, uc, "Tables", 1)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.ItemResponse{
		{ID: chairs, Name: "Chairs", Count: 100},
		{ID: beds, Name: "Beds", Count: 55},
		{ID: tables, Name: "Tables", Count: 1},
	}, list)
}

func TestCreate_SinStockNoRegistraAsignacion(t *testing.T) {
	ctx := context.Background()
	_, uc := newItemUseCase()
	id := mustCreate(t, uc, "  Lamps ", 0)

	item, err := uc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Lamps", item.Name)
	assert.Equal(t, int64(0), item.Count)

	history, err := uc.History(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	_, uc := newItemUseCase()
	_, err := uc.Create(context.Background(), dto.CreateItemRequest{Name: "   ", Count: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), dto.CreateItemRequest{Name: "Chairs", Count: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_RollbackSiFallaElLedger(t *testing.T) {
	ctx := context.Background()
	store, uc := newItemUseCase()
	store.Fault = func(op string) error {
		if op == "assignments.create" {
			return errors.New("disk full")
		}
		return nil
	}

	_, err := uc.Create(ctx, dto.CreateItemRequest{Name: "Chairs", Count: 10})
	require.Error(t, err)

	store.Fault = nil
	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "el item no debe quedar sin su asignación inicial")
}

func TestGetByID_NoEncontrado(t *testing.T) {
	_, uc := newItemUseCase()
	_, err := uc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	_, uc := newItemUseCase()
	mustCreate(t, uc, "Chairs", 1)
	mustCreate(t, uc, "Armchairs", 1)
	mustCreate(t, uc, "Sillón", 1)
	beds := mustCreate(t, uc, "Beds", 1)
	require.NoError(t, uc.MarkDeleted(ctx, beds, "roto"))

	found, err := uc.Search(ctx, "CHAIR")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Chairs", found[0].Name)
	assert.Equal(t, "Armchairs", found[1].Name)

	// Forma descompuesta (o + acento combinante) contra nombre compuesto.
	found, err = uc.Search(ctx, "SILLO\u0301N")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = uc.Search(ctx, "beds")
	require.NoError(t, err)
	assert.Empty(t, found, "los eliminados no aparecen")

	_, err = uc.Search(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_FijarStockAgregaCorreccion(t *testing.T) {
	ctx := context.Background()
	_, uc := newItemUseCase()
	id := mustCreate(t, uc, "Chairs", 100)

	out, err := uc.Update(ctx, id, dto.UpdateItemRequest{Name: ptr("Sillas"), Count: ptr(int64(80))})
	require.NoError(t, err)
	assert.Equal(t, dto.ItemResponse{ID: id, Name: "Sillas", Count: 80}, *out)

	history, err := uc.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(100), history[0].AssignedCount)
	assert.Equal(t, int64(-20), history[1].AssignedCount)

	count, err := uc.GetCurrentCount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(80), count)
}

func TestUpdate_MismoStockNoAgregaEntrada(t *testing.T) {
	ctx := context.Background()
	_, uc := newItemUseCase()
	id := mustCreate(t, uc, "Chairs", 5)

	_, err := uc.Update(ctx, id, dto.UpdateItemRequest{Count: ptr(int64(5))})
	require.NoError(t, err)
	history, err := uc.History(ctx, id)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestUpdate_Errores(t *testing.T) {
	ctx := context.Background()
	_, uc := newItemUseCase()
	id := mustCreate(t, uc, "Chairs", 5)

	_, err := uc.Update(ctx, id, dto.UpdateItemRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, id, dto.UpdateItemRequest{Name: ptr(" ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, id, dto.UpdateItemRequest{Count: ptr(int64(-1))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, 999, dto.UpdateItemRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.MarkDeleted(ctx, id, "roto"))
	_, err = uc.Update(ctx, id, dto.UpdateItemRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación lógica y restauración
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkDeleted_YRestore_IdaYVuelta(t *testing.T) {
	ctx := context.Background()
	store, uc := newItemUseCase()
	chairs := mustCreate(t, uc, "Chairs", 100)
	beds := mustCreate(t, uc, "Beds", 55)

	require.NoError(t, uc.MarkDeleted(ctx, beds, " dañadas "))

	state, err := uc.GetDeletionState(ctx, beds)
	require.NoError(t, err)
	require.True(t, state.Deleted)

	deleted, err := uc.ListDeleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.DeletedItemResponse{
		{ID: beds, Name: "Beds", Count: 55, DeletionID: state.DeletionID, Comment: "dañadas"},
	}, deleted)

	active, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.ItemResponse{{ID: chairs, Name: "Chairs", Count: 100}}, active)

	_, err = uc.GetByID(ctx, beds)
	assert.ErrorIs(t, err, domain.ErrNotFound, "un item eliminado no se expone por id")

	require.NoError(t, uc.Restore(ctx, beds))

	state2, err := uc.GetDeletionState(ctx, beds)
	require.NoError(t, err)
	assert.False(t, state2.Deleted)

	d, err := store.DeletionRepository().GetByID(ctx, state.DeletionID)
	require.NoError(t, err)
	assert.Nil(t, d, "el registro de eliminación desaparece al restaurar")

	item, err := uc.GetByID(ctx, beds)
	require.NoError(t, err)
	assert.Equal(t, int64(55), item.Count, "el stock no cambia con la eliminación")
}

func TestMarkDeleted_DobleEsConflicto(t *testing.T) {
	ctx := context.Background()
	_, uc := newItemUseCase()
	id := mustCreate(t, uc, "Chairs", 1)

	require.NoError(t, uc.MarkDeleted(ctx, id, "uno"))
	err := uc.MarkDeleted(ctx, id, "dos")
	assert.ErrorIs(t, err, domain.ErrConflict)

	deleted, err := uc.ListDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "uno", deleted[0].Comment)
}

func TestMarkDeleted_Errores(t *testing.T) {
	ctx := context.Background()
	_, uc := newItemUseCase()
	id := mustCreate(t, uc, "Chairs", 1)

	assert.ErrorIs(t, uc.MarkDeleted(ctx, id, "  "), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.MarkDeleted(ctx, 77, "x"), domain.ErrNotFound)
}

func TestMarkDeleted_RollbackNoDejaRegistroHuerfano(t *testing.T) {
	ctx := context.Background()
	store, uc := newItemUseCase()
	id := mustCreate(t, uc, "Chairs", 1)
	store.Fault = func(op string) error {
		if op == "items.set_deletion" {
			return errors.New("timeout")
		}
		return nil
	}

	require.Error(t, uc.MarkDeleted(ctx, id, "x"))
	store.Fault = nil

	d, err := store.DeletionRepository().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, d)
	state, err := uc.GetDeletionState(ctx, id)
	require.NoError(t, err)
	assert.False(t, state.Deleted)
}

func TestRestore_Errores(t *testing.T) {
	ctx := context.Background()
	_, uc := newItemUseCase()
	id := mustCreate(t, uc, "Chairs", 1)

	assert.ErrorIs(t, uc.Restore(ctx, id), domain.ErrConflict, "restaurar un item activo")
	assert.ErrorIs(t, uc.Restore(ctx, 99), domain.ErrNotFound)

	require.NoError(t, uc.MarkDeleted(ctx, id, "x"))
	require.NoError(t, uc.Restore(ctx, id))
	assert.ErrorIs(t, uc.Restore(ctx, id), domain.ErrConflict, "restaurar dos veces")
}

func TestGetDeletionState_NoEncontrado(t *testing.T) {
	_, uc := newItemUseCase()
	_, err := uc.GetDeletionState(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetCurrentCount(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.History(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escritores concurrentes
// ──────────────────────────────────────────────────────────────────────────────

// race ejecuta fn desde n goroutines a la vez y cuenta éxitos y conflictos.
func race(t *testing.T, n int, fn func() error) (ok, conflicts int) {
	t.Helper()
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		start = make(chan struct{})
		other []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := fn()
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			default:
				other = append(other, err)
			}
		}()
	}
	close(start)
	wg.Wait()
	require.Empty(t, other)
	return ok, conflicts
}

func TestMarkDeleted_ConcurrenteUnoGana(t *testing.T) {
	ctx := context.Background()
	store, uc := newItemUseCase()
	id := mustCreate(t, uc, "Chairs", 10)

	ok, conflicts := race(t, 20, func() error { return uc.MarkDeleted(ctx, id, "agotado") })
	assert.Equal(t, 1, ok)
	assert.Equal(t, 19, conflicts)

	state, err := uc.GetDeletionState(ctx, id)
	require.NoError(t, err)
	require.True(t, state.Deleted)
	d, err := store.DeletionRepository().GetByID(ctx, state.DeletionID)
	require.NoError(t, err)
	require.NotNil(t, d)

	deleted, err := uc.ListDeleted(ctx)
	require.NoError(t, err)
	assert.Len(t, deleted, 1, "un único registro de eliminación enlazado")
	for other := int64(1); other <= 20; other++ {
		if other == state.DeletionID {
			continue
		}
		d, err := store.DeletionRepository().GetByID(ctx, other)
		require.NoError(t, err)
		assert.Nil(t, d, "los perdedores no dejan registros huérfanos")
	}
}

func TestRestore_ConcurrenteUnoGana(t *testing.T) {
	ctx := context.Background()
	store, uc := newItemUseCase()
	id := mustCreate(t, uc, "Beds", 55)
	require.NoError(t, uc.MarkDeleted(ctx, id, "dañadas"))
	state, err := uc.GetDeletionState(ctx, id)
	require.NoError(t, err)

	ok, conflicts := race(t, 20, func() error { return uc.Restore(ctx, id) })
	assert.Equal(t, 1, ok)
	assert.Equal(t, 19, conflicts)

	after, err := uc.GetDeletionState(ctx, id)
	require.NoError(t, err)
	assert.False(t, after.Deleted)
	d, err := store.DeletionRepository().GetByID(ctx, state.DeletionID)
	require.NoError(t, err)
	assert.Nil(t, d)

	item, err := uc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(55), item.Count)
}

// lostDeletions simula un registro de eliminación borrado por fuera de la aplicación.
type lostDeletions struct {
	repository.DeletionRepository
}

func (lostDeletions) GetByID(context.Context, int64) (*entity.Deletion, error) { return nil, nil }

type lostDeletionsRunner struct {
	store *memory.Store
}

func (r lostDeletionsRunner) Run(ctx context.Context, fn inventory.TxFunc) error {
	return r.store.Run(ctx, func(
		items repository.ItemRepository,
		assignments repository.ItemAssignmentRepository,
		deletions repository.DeletionRepository,
		shipments repository.ShipmentRepository,
	) error {
		return fn(items, assignments, lostDeletions{deletions}, shipments)
	})
}

func TestRestore_RegistroDeEliminacionInexistente(t *testing.T) {
	ctx := context.Background()
	store, uc := newItemUseCase()
	id := mustCreate(t, uc, "Chairs", 1)
	require.NoError(t, uc.MarkDeleted(ctx, id, "x"))

	broken := inventory.NewItemUseCase(lostDeletionsRunner{store: store}, store.ItemRepository(), store.ItemAssignmentRepository())
	assert.ErrorIs(t, broken.Restore(ctx, id), domain.ErrNotFound)

	state, err := uc.GetDeletionState(ctx, id)
	require.NoError(t, err)
	assert.True(t, state.Deleted, "el item sigue eliminado")
}
