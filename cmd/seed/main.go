// Command seed populates a development database with realistic workshop
// history: operator accounts, customers, materials with price history,
// products with recipes, and orders in every lifecycle state. The finished
// production runs give the bottleneck benchmarks real samples to work with.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/infrastructure/postgres"
	"github.com/atolyeos/atolye-api/pkg/config"
	"github.com/atolyeos/atolye-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("schema migration")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	s := &seeder{
		ctx:       ctx,
		users:     postgres.NewUserRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		materials: postgres.NewMaterialRepository(pool),
		products:  postgres.NewProductRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
		tracker:   postgres.NewProductionRepository(pool),
		shipments: postgres.NewShipmentRepository(pool),
		rng:       rand.New(rand.NewSource(42)),
		now:       time.Now(),
	}

	if err := s.run(); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("seed completed")
}

type seeder struct {
	ctx       context.Context
	users     *postgres.UserRepo
	customers *postgres.CustomerRepo
	materials *postgres.MaterialRepo
	products  *postgres.ProductRepo
	orders    *postgres.OrderRepo
	tracker   *postgres.ProductionRepo
	shipments *postgres.ShipmentRepo
	rng       *rand.Rand
	now       time.Time
}

func (s *seeder) run() error {
	if err := s.seedUsers(); err != nil {
		return err
	}
	customers, err := s.seedCustomers()
	if err != nil {
		return err
	}
	materials, err := s.seedMaterials()
	if err != nil {
		return err
	}
	products, err := s.seedProducts(materials)
	if err != nil {
		return err
	}
	return s.seedOrders(customers, products)
}

func (s *seeder) seedUsers() error {
	accounts := []struct {
		email, name, password, role string
	}{
		{"admin@atolyeos.com", "Atölye Yöneticisi", "admin123", entity.RoleAdmin},
		{"usta@atolyeos.com", "Kaynak Ustası", "usta123", entity.RoleWorker},
	}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &entity.User{
			ID:           uuid.NewString(),
			Email:        a.email,
			Name:         a.name,
			PasswordHash: string(hash),
			Role:         a.role,
			CreatedAt:    s.now,
			UpdatedAt:    s.now,
		}
		if err := s.users.Create(s.ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", a.email, err)
		}
	}
	return nil
}

func (s *seeder) seedCustomers() ([]*entity.Customer, error) {
	rows := []entity.Customer{
		{Name: "Yılmaz İnşaat Ltd.", Email: "satin.alma@yilmazinsaat.com", Phone: "+90 532 111 22 33", Address: "Ostim OSB, Ankara", TaxID: "1234567890", TaxOffice: "Ostim VD"},
		{Name: "Konut Yapı Kooperatifi", Email: "info@konutyapi.org", Phone: "+90 533 444 55 66", Address: "Çankaya, Ankara", TaxID: "9876543210", TaxOffice: "Çankaya VD"},
		{Name: "Demir Emlak", Email: "demir@demiremlak.com", Phone: "+90 535 777 88 99", Address: "Sincan, Ankara"},
	}
	out := make([]*entity.Customer, 0, len(rows))
	for _, row := range rows {
		c := row
		c.ID = uuid.NewString()
		c.CreatedAt = s.now.AddDate(0, -6, 0)
		c.UpdatedAt = c.CreatedAt
		if err := s.customers.Create(s.ctx, &c); err != nil {
			return nil, fmt.Errorf("seed customer %s: %w", c.Name, err)
		}
		out = append(out, &c)
	}
	return out, nil
}

// seedMaterials writes materials and fabricates a price history: each
// material had one or two raises over the past months, and the history rows
// store the price that was current before each raise.
func (s *seeder) seedMaterials() (map[string]*entity.Material, error) {
	rows := []struct {
		name, unit        string
		stock, min, price float64
	}{
		{"DKP Sac 1.5mm", "m2", 420, 100, 185.50},
		{"Kutu Profil 40x40", "m", 960, 200, 42.75},
		{"Elektrostatik Toz Boya", "kg", 140, 40, 96.00},
		{"Kilit Takımı (Monoblok)", "adet", 85, 25, 310.00},
		{"Menteşe Seti", "takım", 190, 50, 64.25},
		{"Poliüretan Dolgu", "kg", 75, 30, 120.80},
	}
	out := make(map[string]*entity.Material, len(rows))
	for _, row := range rows {
		m := &entity.Material{
			ID:            uuid.NewString(),
			Name:          row.name,
			Unit:          row.unit,
			CurrentStock:  decimal.NewFromFloat(row.stock),
			MinStockLevel: decimal.NewFromFloat(row.min),
			UnitPrice:     decimal.NewFromFloat(row.price),
			Currency:      "TRY",
			CreatedAt:     s.now.AddDate(0, -8, 0),
			UpdatedAt:     s.now,
		}
		if err := s.materials.Create(s.ctx, m); err != nil {
			return nil, fmt.Errorf("seed material %s: %w", m.Name, err)
		}

		raises := 1 + s.rng.Intn(2)
		price := m.UnitPrice
		for i := raises; i > 0; i-- {
			// walk the price back: the stored row is what was current
			// before the raise that happened at changed_at
			previous := price.Div(decimal.NewFromFloat(1.08 + s.rng.Float64()*0.10)).Round(2)
			h := &entity.MaterialPriceHistory{
				ID:         uuid.NewString(),
				MaterialID: m.ID,
				Price:      previous,
				Currency:   "TRY",
				ChangedAt:  s.now.AddDate(0, -i*2, -s.rng.Intn(20)),
			}
			if err := s.materials.AppendPriceHistory(s.ctx, h); err != nil {
				return nil, err
			}
			price = previous
		}
		out[m.Name] = m
	}
	return out, nil
}

func (s *seeder) seedProducts(materials map[string]*entity.Material) ([]*entity.Product, error) {
	type recipeLine struct {
		material string
		qty      float64
	}
	rows := []struct {
		name, description string
		price             float64
		recipe            []recipeLine
	}{
		{
			"Standart Çelik Kapı", "Tek kanat, standart ölçü", 7250,
			[]recipeLine{{"DKP Sac 1.5mm", 3.2}, {"Kutu Profil 40x40", 6.5}, {"Elektrostatik Toz Boya", 1.1}, {"Kilit Takımı (Monoblok)", 1}, {"Menteşe Seti", 1}},
		},
		{
			"Yangın Kapısı EI-60", "Sertifikalı yangın dayanımlı kapı", 12400,
			[]recipeLine{{"DKP Sac 1.5mm", 4.1}, {"Kutu Profil 40x40", 7.2}, {"Elektrostatik Toz Boya", 1.4}, {"Kilit Takımı (Monoblok)", 1}, {"Menteşe Seti", 1}, {"Poliüretan Dolgu", 5.5}},
		},
		{
			"Villa Kapısı Lüks", "Çift renk, kabartmalı panel", 18900,
			[]recipeLine{{"DKP Sac 1.5mm", 5.0}, {"Kutu Profil 40x40", 8.4}, {"Elektrostatik Toz Boya", 2.2}, {"Kilit Takımı (Monoblok)", 2}, {"Menteşe Seti", 2}, {"Poliüretan Dolgu", 3.0}},
		},
	}
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p := &entity.Product{
			ID:          uuid.NewString(),
			Name:        row.name,
			Description: row.description,
			BasePrice:   decimal.NewFromFloat(row.price),
			Currency:    "TRY",
			CreatedAt:   s.now.AddDate(0, -8, 0),
			UpdatedAt:   s.now,
		}
		if err := s.products.Create(s.ctx, p); err != nil {
			return nil, fmt.Errorf("seed product %s: %w", p.Name, err)
		}
		recipe := make([]entity.RecipeItem, 0, len(row.recipe))
		for _, line := range row.recipe {
			m, ok := materials[line.material]
			if !ok {
				return nil, fmt.Errorf("seed product %s: unknown material %s", p.Name, line.material)
			}
			recipe = append(recipe, entity.RecipeItem{
				ID:         uuid.NewString(),
				ProductID:  p.ID,
				MaterialID: m.ID,
				Quantity:   decimal.NewFromFloat(line.qty),
			})
		}
		if err := s.products.ReplaceRecipe(s.ctx, p.ID, recipe); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// seedOrders creates delivered orders with fully-closed production runs
// (benchmark samples), a couple of in-progress orders and pending ones.
func (s *seeder) seedOrders(customers []*entity.Customer, products []*entity.Product) error {
	// 8 finished runs feed the stage benchmarks
	for i := 0; i < 8; i++ {
		o, err := s.createOrder(customers[i%len(customers)], products[i%len(products)], 1+s.rng.Intn(4), entity.OrderStatusDelivered, s.now.AddDate(0, 0, -60+i*5))
		if err != nil {
			return err
		}
		if err := s.createFinishedRun(o); err != nil {
			return err
		}
	}

	// 2 orders mid-pipeline
	stages := []entity.Stage{entity.StageWeldingGrinding, entity.StagePaintingWashing}
	for i, stage := range stages {
		o, err := s.createOrder(customers[i%len(customers)], products[(i+1)%len(products)], 2, entity.OrderStatusInProduction, s.now.AddDate(0, 0, -3-i))
		if err != nil {
			return err
		}
		if err := s.createActiveRun(o, stage); err != nil {
			return err
		}
	}

	// 3 pending orders so the stock forecast has demand to project
	for i := 0; i < 3; i++ {
		if _, err := s.createOrder(customers[(i+1)%len(customers)], products[i%len(products)], 3+i*2, entity.OrderStatusPending, s.now.AddDate(0, 0, -i)); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) createOrder(c *entity.Customer, p *entity.Product, qty int, status string, createdAt time.Time) (*entity.Order, error) {
	info, _ := json.Marshal(map[string]string{"phone": c.Phone, "address": c.Address})
	configuration, _ := json.Marshal(map[string]any{
		"color":  []string{"RAL 7016", "RAL 8017", "RAL 9005"}[s.rng.Intn(3)],
		"width":  90 + s.rng.Intn(3)*10,
		"height": 200 + s.rng.Intn(2)*10,
	})
	total := p.BasePrice.Mul(decimal.NewFromInt(int64(qty)))
	customerID := c.ID
	o := &entity.Order{
		ID:           uuid.NewString(),
		CustomerID:   &customerID,
		CustomerName: c.Name,
		CustomerInfo: info,
		Status:       status,
		TotalAmount:  total,
		Items: []entity.OrderItem{{
			ID:            uuid.NewString(),
			ProductID:     p.ID,
			Quantity:      qty,
			UnitPrice:     p.BasePrice,
			Configuration: configuration,
			Product:       p,
		}},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	o.Items[0].OrderID = o.ID
	if err := s.orders.Create(s.ctx, o); err != nil {
		return nil, fmt.Errorf("seed order: %w", err)
	}
	return o, nil
}

// createFinishedRun fabricates a completed pipeline pass with plausible
// per-stage durations around the expected hours, plus the shipment record.
func (s *seeder) createFinishedRun(o *entity.Order) error {
	expected := map[entity.Stage]float64{
		entity.StageCuttingBending:    4,
		entity.StageWeldingGrinding:   6,
		entity.StagePaintingWashing:   12,
		entity.StageAssemblyPackaging: 4,
	}

	start := o.CreatedAt.Add(24 * time.Hour)
	trackingID := uuid.NewString()
	tracking := &entity.ProductionTracking{
		ID:           trackingID,
		OrderID:      o.ID,
		CurrentStage: entity.StageReadyForShipment,
		StartedAt:    start,
		CreatedAt:    start,
		UpdatedAt:    start,
	}

	cursor := start
	for _, stage := range entity.BenchmarkStages() {
		jitter := 0.7 + s.rng.Float64()*0.6
		duration := time.Duration(expected[stage] * jitter * float64(time.Hour))
		completed := cursor.Add(duration)
		tracking.History = append(tracking.History, entity.ProductionHistory{
			ID:          uuid.NewString(),
			TrackingID:  trackingID,
			Stage:       stage,
			EnteredAt:   cursor,
			CompletedAt: &completed,
			Notes:       "Seeded stage pass",
		})
		cursor = completed
	}
	terminalEntry := entity.ProductionHistory{
		ID:          uuid.NewString(),
		TrackingID:  trackingID,
		Stage:       entity.StageReadyForShipment,
		EnteredAt:   cursor,
		CompletedAt: &cursor,
		Notes:       "Production finished",
	}
	tracking.History = append(tracking.History, terminalEntry)
	tracking.CompletedAt = &cursor

	if err := s.tracker.Create(s.ctx, tracking); err != nil {
		return fmt.Errorf("seed finished run: %w", err)
	}

	shipped := cursor.Add(12 * time.Hour)
	shipment := &entity.Shipment{
		ID:            uuid.NewString(),
		OrderID:       o.ID,
		WaybillNumber: fmt.Sprintf("IRS-%06d", 100000+s.rng.Intn(900000)),
		CarrierInfo:   "Atölye kamyonu - 06 ABC " + fmt.Sprintf("%03d", s.rng.Intn(999)),
		ShippedAt:     shipped,
		CreatedAt:     shipped,
	}
	if err := s.shipments.Create(s.ctx, shipment); err != nil {
		return fmt.Errorf("seed shipment: %w", err)
	}
	return nil
}

// createActiveRun leaves the tracking mid-pipeline with the current stage's
// history entry still open.
func (s *seeder) createActiveRun(o *entity.Order, current entity.Stage) error {
	start := o.CreatedAt.Add(12 * time.Hour)
	trackingID := uuid.NewString()
	tracking := &entity.ProductionTracking{
		ID:           trackingID,
		OrderID:      o.ID,
		CurrentStage: current,
		StartedAt:    start,
		CreatedAt:    start,
		UpdatedAt:    start,
	}

	cursor := start
	for _, stage := range entity.Stages() {
		if stage.Ordinal() > current.Ordinal() {
			break
		}
		entry := entity.ProductionHistory{
			ID:         uuid.NewString(),
			TrackingID: trackingID,
			Stage:      stage,
			EnteredAt:  cursor,
			Notes:      "Seeded stage pass",
		}
		if stage != current {
			completed := cursor.Add(time.Duration(4+s.rng.Intn(8)) * time.Hour)
			entry.CompletedAt = &completed
			cursor = completed
		}
		tracking.History = append(tracking.History, entry)
	}

	if err := s.tracker.Create(s.ctx, tracking); err != nil {
		return fmt.Errorf("seed active run: %w", err)
	}
	return nil
}
