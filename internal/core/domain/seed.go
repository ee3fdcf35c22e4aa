// internal/core/domain/seed.go
package domain

// SeedRecords returns the fixed initial dataset used when no persisted
// snapshot exists. InitialQty is captured from the starting InventoryQty at
// seed time only; restored snapshots keep their stored values verbatim.
func SeedRecords() []ItemRecord {
	records := []ItemRecord{
		{
			MaterialCode:     "9.04.009449",
			MaterialName:     "EZC250H3200 MCCB 3P 200A36kA Schneider",
			Specification:    "EZC250H3200 MCCB 3P 200A36kA Schneider",
			WarehouseName:    "Pulp Tray (Consumable Material)",
			StockUnit:        "unit",
			InventoryQty:     1,
			InventoryStatus:  "Available",
			InventoryOrg:     "PT GAOYI PACKAGING INDONESIA",
			TypeOfOwner:      "Business Org",
			OwnerName:        "PT GAOYI PACKAGING INDONESIA",
			MaterialGrouping: "Electrical appliances",
		},
		{
			MaterialCode:     "9.07.011003",
			MaterialName:     "Airtac Solenoid Valve 4V21008A AC220V",
			Specification:    "Airtac Solenoid Valve 4V21008A AC220V",
			WarehouseName:    "Pulp Tray (Consumable Material)",
			StockUnit:        "Pcs",
			InventoryQty:     3,
			InventoryStatus:  "Available",
			InventoryOrg:     "PT GAOYI PACKAGING INDONESIA",
			TypeOfOwner:      "Business Org",
			OwnerName:        "PT GAOYI PACKAGING INDONESIA",
			MaterialGrouping: "Accessories",
		},
		{
			MaterialCode:       "1465.Z.0021",
			MaterialName:       "INNER CARTON FILLER MATERIAL",
			Specification:      "320±3mm(L)*180±2mm(W)*32±2mm(H); 86g±10%",
			WarehouseName:      "Pulp Tray (Finished Product)",
			StockUnit:          "Pcs",
			InventoryQty:       3000,
			InventoryStatus:    "Available",
			InventoryOrg:       "PT GAOYI PACKAGING INDONESIA",
			TypeOfOwner:        "Business Org",
			OwnerName:          "PT GAOYI PACKAGING INDONESIA",
			CustomerPN:         "SLPRT-100292700",
			MaterialGrouping:   "Pulp",
			CustomerEndPN:      "H23-361 A04 R04",
			MasterDataProperty: "",
		},
	}

	for i := range records {
		records[i].InitialQty = records[i].InventoryQty
		records[i].History = []LedgerEntry{}
	}
	return records
}
