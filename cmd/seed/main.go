package main

import (
	"log/slog"
	"time"

	"github.com/africahouse/tradeportal/internal/config"
	"github.com/africahouse/tradeportal/internal/db"
	"github.com/africahouse/tradeportal/internal/logger"
	"github.com/africahouse/tradeportal/internal/model"
	"github.com/africahouse/tradeportal/internal/repository"
	"github.com/google/uuid"
)

// sampleCompanies populates the public directory for demos and local
// development.
var sampleCompanies = []model.Company{
	{Name: "Karachi Textile Mills", Address: "www.karachitextile.com", Phone: "+92 21 34567890", Mobile: "+92 300 1234567", Email: "info@karachitextile.com", Services: "Yarn manufacturing, Fabric processing, Dyeing services, Cotton exports"},
	{Name: "Punjab Rice Traders", Address: "www.punjabrice.com.pk", Phone: "+92 42 37373737", Mobile: "+92 321 1122334", Email: "export@punjabrice.com.pk", Services: "Basmati rice, Parboiled rice, Packaging, Global exports"},
	{Name: "Sialkot Sports Gear", Address: "www.sialkotsportsgear.com", Phone: "+92 52 4267890", Mobile: "+92 332 4567890", Email: "sales@sialkotsportsgear.com", Services: "Football manufacturing, Sports gloves, Cricket gear, OEM supplies"},
	{Name: "Lahore Leather Works", Address: "www.lahoreleather.pk", Phone: "+92 42 35900011", Mobile: "+92 300 9988776", Email: "orders@lahoreleather.pk", Services: "Tanned leather, Leather bags, Footwear, Custom accessories"},
	{Name: "Multan Blue Pottery", Address: "www.multanpottery.com", Phone: "+92 61 6789012", Mobile: "+92 333 6655443", Email: "contact@multanpottery.com", Services: "Handcrafted ceramics, Blue pottery, Souvenirs, Decorative tiles"},
	{Name: "Pak Agro Foods", Address: "www.pakagrofoods.com", Phone: "+92 21 38475632", Mobile: "+92 302 1112233", Email: "info@pakagrofoods.com", Services: "Fruits and vegetables, Dates, Organic spices, Halal food exports"},
	{Name: "Quetta Marble Industries", Address: "www.quettamarble.com", Phone: "+92 81 2828374", Mobile: "+92 312 4567890", Email: "support@quettamarble.com", Services: "Marble tiles, Stone blocks, Floor slabs, Export logistics"},
	{Name: "Islamabad IT Solutions", Address: "www.isbit.com.pk", Phone: "+92 51 5551234", Mobile: "+92 344 2223344", Email: "support@isbit.com.pk", Services: "Web development, ERP systems, Cybersecurity, Mobile app design"},
	{Name: "Faisalabad Garment Hub", Address: "www.faisalgarments.com", Phone: "+92 41 8789090", Mobile: "+92 300 5678901", Email: "export@faisalgarments.com", Services: "T-shirts, Jeans, Kidswear, Global B2B supply"},
	{Name: "Hyderabad Handicrafts", Address: "www.hyderabadcrafts.pk", Phone: "+92 22 2783002", Mobile: "+92 301 5566778", Email: "hello@hyderabadcrafts.pk", Services: "Traditional Sindhi crafts, Embroidery, Cultural decor, Hand-woven products"},
	{Name: "Kigali Coffee Exporters", Address: "www.kigalicoffee.rw", Phone: "+250 788 123456", Mobile: "+250 722 334455", Email: "info@kigalicoffee.rw", Services: "Arabica beans, Specialty coffee, Organic coffee, Direct trade"},
	{Name: "Rwanda Tech Innovations", Address: "www.rwandatech.rw", Phone: "+250 786 567890", Mobile: "+250 733 445566", Email: "contact@rwandatech.rw", Services: "Custom software, IT training, Web platforms, Business automation"},
	{Name: "Nyungwe Herbal Exports", Address: "www.nyungweherbs.rw", Phone: "+250 783 112233", Mobile: "+250 722 554433", Email: "sales@nyungweherbs.rw", Services: "Herbal teas, Medicinal plants, Dried leaves, Natural oils"},
	{Name: "Volcano Leather Works", Address: "www.volcanoleather.rw", Phone: "+250 789 665544", Mobile: "+250 721 123456", Email: "orders@volcanoleather.rw", Services: "Leather bags, Handmade belts, Wallets, Artisanal goods"},
	{Name: "Akagera Honey Co.", Address: "www.akagerahoney.rw", Phone: "+250 788 998877", Mobile: "+250 734 556677", Email: "support@akagerahoney.rw", Services: "Raw honey, Beeswax, Beekeeping products, Agro exports"},
	{Name: "Rwanda Agri Traders", Address: "www.rwandaagri.rw", Phone: "+250 782 445566", Mobile: "+250 722 998877", Email: "info@rwandaagri.rw", Services: "Beans, Maize, Horticulture, Organic farming"},
	{Name: "Lake Kivu Fish Co.", Address: "www.lakekivufish.rw", Phone: "+250 783 223344", Mobile: "+250 735 112233", Email: "export@lakekivufish.rw", Services: "Tilapia, Processed fish, Cold storage, Regional distribution"},
	{Name: "Kigali Fashion Studio", Address: "www.kigalifashion.rw", Phone: "+250 787 345678", Mobile: "+250 723 345678", Email: "contact@kigalifashion.rw", Services: "Tailoring, Traditional wear, African prints, Custom clothing"},
	{Name: "Rwanda Green Energy Ltd", Address: "www.rwandagreenenergy.rw", Phone: "+250 781 334455", Mobile: "+250 720 998822", Email: "hello@rwandagreenenergy.rw", Services: "Solar panels, Mini-grids, Sustainable lighting, Energy consulting"},
	{Name: "Muhanga Ceramic Works", Address: "www.muhangaceramics.rw", Phone: "+250 789 112244", Mobile: "+250 722 998877", Email: "support@muhangaceramics.rw", Services: "Clay pottery, Roofing tiles, Brick production, Custom ceramic ware"},
}

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), "")

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		panic(err)
	}
	defer func() { _ = database.Close() }()

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		slog.Error("failed to run migrations", "error", err)
		panic(err)
	}

	companies := repository.NewCompanyRepository(database)

	existing, err := companies.All()
	if err != nil {
		slog.Error("failed to check existing companies", "error", err)
		panic(err)
	}
	if len(existing) > 0 {
		slog.Info("directory already seeded", "count", len(existing))
		return
	}

	for i := range sampleCompanies {
		company := sampleCompanies[i]
		company.ID = uuid.New().String()
		company.CreatedAt = time.Now()

		if err := companies.Create(&company); err != nil {
			slog.Error("failed to seed company", "error", err, "name", company.Name)
			panic(err)
		}
	}

	slog.Info("seeded company directory", "count", len(sampleCompanies))
}
