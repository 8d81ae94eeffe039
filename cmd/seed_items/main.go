// seed_items carga items iniciales desde un CSV con cabecera "name,count".
// Cada fila crea el item y su asignación inicial en su propia transacción.
//
// Uso: go run ./cmd/seed_items [-latin1] [-migrate] items.csv
// Con -latin1 el archivo se decodifica como ISO-8859-1 (exportes de Excel en Windows).
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bodega-api/pkg/config"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

var expectedHeader = []string{"name", "count"}

func main() {
	latin1 := flag.Bool("latin1", false, "decodificar el CSV como ISO-8859-1")
	migrate := flag.Bool("migrate", false, "aplicar migraciones antes de cargar")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_items [-latin1] [-migrate] items.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_items"})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	items, err := readItems(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if *migrate || cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	uc := inventory.NewItemUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewItemRepository(pool),
		postgres.NewItemAssignmentRepository(pool),
	)
	for i, in := range items {
		out, err := uc.Create(ctx, in)
		if err != nil {
			log.Fatal().Err(err).Int("row", i+2).Str("name", in.Name).Msg("crear item")
		}
		log.Info().Int64("id", out.ID).Str("name", out.Name).Int64("count", out.Count).Msg("item creado")
	}
	log.Info().Int("items", len(items)).Msg("carga terminada")
}

// readItems valida la cabecera y convierte cada fila en una solicitud de alta.
func readItems(r io.Reader, latin1 bool) ([]dto.CreateItemRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("CSV vacío")
	}
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	if len(header) != len(expectedHeader) {
		return nil, fmt.Errorf("cabecera inválida: se esperaba %v, se obtuvo %v", expectedHeader, header)
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), expectedHeader[i]) {
			return nil, fmt.Errorf("cabecera inválida: se esperaba %v, se obtuvo %v", expectedHeader, header)
		}
	}

	var items []dto.CreateItemRequest
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", row, err)
		}
		count, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fila %d: count inválido %q", row, record[1])
		}
		in := dto.CreateItemRequest{Name: strings.TrimSpace(record[0]), Count: count}
		if err := dto.Validate(in); err != nil {
			return nil, fmt.Errorf("fila %d: %w", row, err)
		}
		items = append(items, in)
	}
	return items, nil
}
