package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/boranno/University-Canteen-Management-System/config"
	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/internal/app/repository"
	"github.com/boranno/University-Canteen-Management-System/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports canteens and their menus from a campus facilities XLSX export.
//
// Sheet "Canteens": name, description, location, open_time, close_time, tags
// (comma separated).
// Sheet "MenuItems": canteen name, item name, description, price, category.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	canteenRepo := repository.NewCanteenRepository(db.GetDB())
	menuItemRepo := repository.NewMenuItemRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX:", err)
	}
	defer f.Close()

	canteens, menusByCanteen, err := readWorkbook(f)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Canteens to import: %d\n", len(canteens))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	if err := canteenRepo.BulkCreate(canteens, 100); err != nil {
		log.Fatal("Failed to bulk create canteens:", err)
	}

	// Menu rows reference canteens by name; resolve IDs after the insert.
	var items []model.MenuItem
	for i := range canteens {
		for _, item := range menusByCanteen[canteens[i].Name] {
			item.CanteenID = canteens[i].ID
			items = append(items, item)
		}
	}
	if len(items) > 0 {
		if err := menuItemRepo.BulkCreate(items, 500); err != nil {
			log.Fatal("Failed to bulk create menu items:", err)
		}
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Canteens imported: %d, menu items imported: %d\n", len(canteens), len(items))
}

func readWorkbook(f *excelize.File) ([]model.Canteen, map[string][]model.MenuItem, error) {
	canteens, err := readCanteens(f)
	if err != nil {
		return nil, nil, err
	}

	menus, err := readMenuItems(f)
	if err != nil {
		return nil, nil, err
	}

	return canteens, menus, nil
}

func readCanteens(f *excelize.File) ([]model.Canteen, error) {
	rows, err := f.GetRows("Canteens")
	if err != nil {
		return nil, fmt.Errorf("failed to read Canteens sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no canteen rows found")
	}

	var canteens []model.Canteen
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 5 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		location := strings.TrimSpace(row[2])
		openTime := strings.TrimSpace(row[3])
		closeTime := strings.TrimSpace(row[4])

		if name == "" || location == "" || openTime == "" || closeTime == "" {
			skipped++
			continue
		}
		if seen[name] {
			skipped++
			continue
		}
		seen[name] = true

		canteen := model.Canteen{
			Name:        name,
			Description: strings.TrimSpace(row[1]),
			Location:    location,
			OpenTime:    openTime,
			CloseTime:   closeTime,
			IsOpen:      true,
		}
		if len(row) > 5 {
			for _, tag := range strings.Split(row[5], ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					canteen.Tags = append(canteen.Tags, tag)
				}
			}
		}

		canteens = append(canteens, canteen)
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d invalid canteen rows\n", skipped)
	}

	return canteens, nil
}

func readMenuItems(f *excelize.File) (map[string][]model.MenuItem, error) {
	rows, err := f.GetRows("MenuItems")
	if err != nil {
		// Menu sheet is optional.
		fmt.Println("No MenuItems sheet found, importing canteens only")
		return map[string][]model.MenuItem{}, nil
	}

	menus := make(map[string][]model.MenuItem)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 4 {
			skipped++
			continue
		}

		canteenName := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		priceStr := strings.TrimSpace(row[3])

		price, err := strconv.ParseFloat(priceStr, 64)
		if canteenName == "" || name == "" || err != nil || price < 0 {
			skipped++
			continue
		}

		item := model.MenuItem{
			Name:        name,
			Description: strings.TrimSpace(row[2]),
			Price:       price,
			IsAvailable: true,
		}
		if len(row) > 4 {
			item.Category = strings.TrimSpace(row[4])
		}

		menus[canteenName] = append(menus[canteenName], item)
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d invalid menu rows\n", skipped)
	}

	return menus, nil
}
