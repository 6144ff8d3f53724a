package types

const (
	// ModuleName defines the module name
	ModuleName = "poolmanager"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// prefix for the currency-level capacity reward pool
	CapacityPoolPrefix = "cap-rp/"

	// prefix for the vault-level reward pool
	VaultPoolPrefix = "vault-rp/"

	// prefix for the flat per-vault reward pool of the pre-hierarchy scheme,
	// read and cleared by the v0 to v1 migration only
	LegacyVaultRewardsPrefix = "vault-rewards/"

	// persisted schema version gating the migration
	VersionKey = "version"

	// persisted progress of an in-flight migration, deleted on completion
	MigrationStageKey  = "migration-stage"
	MigrationCursorKey = "migration-cursor"
)

// GlobalPoolID addresses pools that have a single instance-wide pool: the
// capacity pool (one pool, staked per currency) and the legacy flat pool (one
// pool, staked per vault).
const GlobalPoolID = ""

func KeyPrefix(p string) []byte {
	return []byte(p)
}
