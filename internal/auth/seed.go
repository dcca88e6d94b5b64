package auth

// Seed data for the permission matrix and bootstrap credentials. The matrix
// is administered out of band; the gate only ever reads it. The seed tool in
// scripts/seed installs these rows.

// SeedResources lists the protected business resources of the warehouse API.
func SeedResources() []string {
	return []string{
		"clients", "orders", "inventories", "shipments", "suppliers",
		"items", "warehouses", "transfers", "locations", "itemtypes",
		"itemlines", "itemgroups",
	}
}

func rule(role Role, resource string, view, create, update, del bool) PermissionRule {
	return PermissionRule{
		Role:      role,
		Resource:  resource,
		CanView:   view,
		CanCreate: create,
		CanUpdate: update,
		CanDelete: del,
	}
}

// DefaultRules returns the seed permission matrix. Admin rows are included
// for completeness even though the evaluator bypasses the matrix for Admin.
func DefaultRules() []PermissionRule {
	var rules []PermissionRule

	for _, resource := range SeedResources() {
		rules = append(rules, rule(RoleAdmin, resource, true, true, true, true))
	}
	rules = append(rules, rule(RoleAdmin, "keys", true, true, true, true))

	rules = append(rules,
		rule(RoleWarehouseManager, "warehouses", true, true, true, false),
		rule(RoleWarehouseManager, "locations", true, false, false, false),
		rule(RoleWarehouseManager, "transfers", true, false, false, false),
		rule(RoleWarehouseManager, "inventories", true, false, false, false),
		rule(RoleWarehouseManager, "keys", true, true, true, true),
	)

	rules = append(rules,
		rule(RoleInventoryManager, "inventories", true, true, true, false),
		rule(RoleInventoryManager, "items", true, false, true, false),
		rule(RoleInventoryManager, "itemtypes", true, false, false, false),
		rule(RoleInventoryManager, "itemlines", true, false, false, false),
		rule(RoleInventoryManager, "itemgroups", true, false, false, false),
		rule(RoleInventoryManager, "locations", true, false, false, false),
		rule(RoleInventoryManager, "transfers", true, true, false, false),
	)

	rules = append(rules,
		rule(RoleFloorManager, "locations", true, false, true, false),
		rule(RoleFloorManager, "transfers", true, false, true, false),
		rule(RoleFloorManager, "inventories", true, false, false, false),
	)

	rules = append(rules,
		rule(RoleOperative, "items", true, false, false, false),
		rule(RoleOperative, "locations", true, false, false, false),
		rule(RoleOperative, "inventories", true, false, false, false),
	)

	rules = append(rules,
		rule(RoleSupervisor, "items", true, false, false, false),
		rule(RoleSupervisor, "locations", true, false, false, false),
		rule(RoleSupervisor, "inventories", true, false, false, false),
		rule(RoleSupervisor, "transfers", true, true, false, false),
		rule(RoleSupervisor, "orders", true, false, false, false),
	)

	for _, resource := range SeedResources() {
		rules = append(rules, rule(RoleAnalyst, resource, true, false, false, false))
	}

	rules = append(rules,
		rule(RoleLogistics, "shipments", true, true, true, false),
		rule(RoleLogistics, "transfers", true, false, false, false),
		rule(RoleLogistics, "orders", true, false, true, false),
	)

	rules = append(rules,
		rule(RoleSales, "clients", true, true, true, false),
		rule(RoleSales, "orders", true, true, true, false),
		rule(RoleSales, "items", true, false, false, false),
	)

	return rules
}

func wh(id int64) *int64 {
	return &id
}

// BootstrapPrincipals returns the development credentials installed by the
// seed tool. Production deployments replace the secrets before exposure.
func BootstrapPrincipals() []Principal {
	return []Principal{
		{Key: "admin_key_2024", App: "Admin Application", Role: RoleAdmin},
		{Key: "warehouse_key_2024", App: "Warehouse Application", Role: RoleWarehouseManager},
		{Key: "inventory_key_2024_wh1", App: "Inventory Application", Role: RoleInventoryManager, WarehouseID: wh(1)},
		{Key: "inventory_key_2024_wh2", App: "Inventory Application", Role: RoleInventoryManager, WarehouseID: wh(2)},
		{Key: "floor_key_2024_wh1", App: "Floor Application", Role: RoleFloorManager, WarehouseID: wh(1)},
		{Key: "floor_key_2024_wh2", App: "Floor Application", Role: RoleFloorManager, WarehouseID: wh(2)},
		{Key: "operative_key_2024_wh1", App: "Operations Application", Role: RoleOperative, WarehouseID: wh(1)},
		{Key: "operative_key_2024_wh2", App: "Operations Application", Role: RoleOperative, WarehouseID: wh(2)},
		{Key: "supervisor_key_2024_wh1", App: "Supervisor Application", Role: RoleSupervisor, WarehouseID: wh(1)},
		{Key: "supervisor_key_2024_wh2", App: "Supervisor Application", Role: RoleSupervisor, WarehouseID: wh(2)},
		{Key: "analyst_key_2024", App: "Analytics Application", Role: RoleAnalyst},
		{Key: "logistics_key_2024", App: "Logistics Application", Role: RoleLogistics},
		{Key: "sales_key_2024", App: "Sales Application", Role: RoleSales},
	}
}
