package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/bridgex-network/bridgex/common/types"
	"github.com/bridgex-network/bridgex/utils"
	"github.com/bridgex-network/bridgex/utils/maps"
	"github.com/bridgex-network/bridgex/x/poolmanager/types"
	rewardtypes "github.com/bridgex-network/bridgex/x/reward/types"
)

type Migrator struct {
	keeper Keeper
	budget uint64
}

// units of work (vaults processed, storage entries cleared) per invocation
const defaultMigrationBudget = 500

func NewMigrator(keeper Keeper) Migrator {
	return NewMigratorWithBudget(keeper, defaultMigrationBudget)
}

func NewMigratorWithBudget(keeper Keeper, budget uint64) Migrator {
	return Migrator{keeper: keeper, budget: budget}
}

// migration stages, persisted so an interrupted run resumes where it stopped
const (
	stageRedistribute = iota
	stageClear
	stageRecompute
)

// collateral accounting is allowed to be off by rounding dust
var verifyCollateralTolerance = math.LegacyNewDec(100)

// MigrateVersion0To1 converts the flat per-vault reward scheme into the
// capacity/vault pool hierarchy:
//
//  1. no-op unless the persisted schema version is 0;
//  2. redistribute every vault's accrued, not-yet-withdrawn legacy rewards
//     (wrapped and native currency) through its nominator staking pool --
//     per-vault failures are logged and skipped so the migration keeps making
//     forward progress;
//  3. clear the legacy pool's storage;
//  4. recompute every vault's stake under the hierarchy from collateral,
//     threshold and oracle price -- a failure here is fatal and leaves the
//     version at 0, so the run can be retried once the oracle or threshold
//     problem is fixed;
//  5. persist schema version 1.
//
// Each invocation performs at most the configured budget of work and persists
// a stage and cursor before returning, so a large vault set is migrated
// across several invocations. Callers invoke it until it reports completion;
// invoking it again after completion is a cheap no-op.
//
// The cursor indexes into the registry's vault list, which is required to
// iterate in ascending id order on every invocation.
func (m Migrator) MigrateVersion0To1(ctx sdk.Context) (bool, error) {
	version := m.keeper.GetStorageVersion(ctx)
	if version != 0 {
		m.keeper.Logger(ctx).Warn("skipping v0 to v1 migration: executed on wrong storage version",
			"expected", uint64(0),
			"found", version,
		)
		return true, nil
	}

	vaults := m.keeper.vaultKeeper.GetVaults(ctx)
	stage, cursor := m.migrationProgress(ctx)
	remaining := m.budget

	if stage == stageRedistribute {
		for cursor < uint64(len(vaults)) && remaining > 0 {
			m.redistributeLegacyRewards(ctx, vaults[cursor])
			cursor++
			remaining--
		}
		if cursor < uint64(len(vaults)) {
			m.setMigrationProgress(ctx, stageRedistribute, cursor)
			return false, nil
		}
		stage, cursor = stageClear, 0
		m.setMigrationProgress(ctx, stage, cursor)
	}

	if stage == stageClear {
		if remaining == 0 {
			return false, nil
		}
		deleted, complete := m.keeper.legacyVaultRewards.ClearPoolStorage(ctx, remaining)
		remaining -= deleted
		if !complete {
			return false, nil
		}
		m.keeper.Logger(ctx).Info("cleared legacy vault rewards storage", "entries", deleted)
		stage, cursor = stageRecompute, 0
		m.setMigrationProgress(ctx, stage, cursor)
	}

	for cursor < uint64(len(vaults)) && remaining > 0 {
		if err := m.keeper.UpdateRewardStake(ctx, vaults[cursor]); err != nil {
			return false, utils.FormatError("aborting migration: cannot convert vault stake", err,
				utils.LogAttr("vault", vaults[cursor].String()),
			)
		}
		cursor++
		remaining--
	}
	if cursor < uint64(len(vaults)) {
		m.setMigrationProgress(ctx, stageRecompute, cursor)
		return false, nil
	}

	m.keeper.setStorageVersion(ctx, 1)
	m.clearMigrationProgress(ctx)
	m.keeper.Logger(ctx).Info("finished rewards migration", "vaults", len(vaults))
	return true, nil
}

// redistributeLegacyRewards moves a vault's accrued legacy rewards into its
// nominator staking pool. Errors are logged and skipped, never fatal: one
// broken vault must not stall the migration of thousands of others.
func (m Migrator) redistributeLegacyRewards(ctx sdk.Context, vault commontypes.VaultId) {
	for _, currencyID := range []string{vault.WrappedCurrency, m.keeper.nativeCurrencyID} {
		reward, err := m.keeper.legacyVaultRewards.ComputeReward(ctx, types.GlobalPoolID, vault.String(), currencyID)
		if err != nil {
			m.keeper.Logger(ctx).Error("skipping legacy reward computation",
				"vault", vault.String(),
				"currency_id", currencyID,
				"err", err,
			)
			continue
		}
		if err := m.keeper.stakingKeeper.DistributeReward(ctx, vault.String(), currencyID, reward); err != nil {
			m.keeper.Logger(ctx).Error("skipping legacy reward redistribution",
				"vault", vault.String(),
				"currency_id", currencyID,
				"err", err,
			)
		}
	}
}

func (m Migrator) migrationProgress(ctx sdk.Context) (stage, cursor uint64) {
	store := ctx.KVStore(m.keeper.storeKey)
	if b := store.Get([]byte(types.MigrationStageKey)); b != nil {
		stage = sdk.BigEndianToUint64(b)
	}
	if b := store.Get([]byte(types.MigrationCursorKey)); b != nil {
		cursor = sdk.BigEndianToUint64(b)
	}
	return stage, cursor
}

func (m Migrator) setMigrationProgress(ctx sdk.Context, stage, cursor uint64) {
	store := ctx.KVStore(m.keeper.storeKey)
	store.Set([]byte(types.MigrationStageKey), sdk.Uint64ToBigEndian(stage))
	store.Set([]byte(types.MigrationCursorKey), sdk.Uint64ToBigEndian(cursor))
}

func (m Migrator) clearMigrationProgress(ctx sdk.Context) {
	store := ctx.KVStore(m.keeper.storeKey)
	store.Delete([]byte(types.MigrationStageKey))
	store.Delete([]byte(types.MigrationCursorKey))
}

// VerifyMigration checks the hierarchy's books after a migration. Advisory:
// the migration does not depend on it, but operators can run it to confirm
// that no value went missing.
func (m Migrator) VerifyMigration(ctx sdk.Context) error {
	vaults := m.keeper.vaultKeeper.GetVaults(ctx)

	vaultsByCurrency := map[string][]commontypes.VaultId{}
	for _, vault := range vaults {
		vaultsByCurrency[vault.CollateralCurrency] = append(vaultsByCurrency[vault.CollateralCurrency], vault)
	}
	currencies := maps.StableSortedKeys(vaultsByCurrency)

	// vault pool stake matches each vault's capacity
	for _, vault := range vaults {
		threshold, err := m.keeper.vaultKeeper.GetSecureThreshold(ctx, vault)
		if err != nil {
			return err
		}
		expected, err := rewardtypes.CheckedQuo(m.keeper.stakingKeeper.TotalCurrentStake(ctx, vault.String()), threshold)
		if err != nil {
			return err
		}
		actual := m.keeper.vaultPool.GetStake(ctx, vault.CollateralCurrency, vault.String())
		if !actual.Equal(expected) {
			return utils.FormatError("vault pool stake does not match capacity", nil,
				utils.LogAttr("vault", vault.String()),
				utils.LogAttr("expected", expected),
				utils.LogAttr("actual", actual),
			)
		}
	}

	for _, currencyID := range currencies {
		// vault pool total matches the sum of its individual stakes
		total := m.keeper.vaultPool.TotalStake(ctx, currencyID)
		sum := math.LegacyZeroDec()
		for _, vault := range vaultsByCurrency[currencyID] {
			sum = sum.Add(m.keeper.vaultPool.GetStake(ctx, currencyID, vault.String()))
		}
		if !total.Equal(sum) {
			return utils.FormatError("vault pool total stake does not match sum of stakes", nil,
				utils.LogAttr("currency_id", currencyID),
				utils.LogAttr("total", total),
				utils.LogAttr("sum", sum),
			)
		}

		// capacity pool stake matches the converted vault pool total
		price, err := m.keeper.oracleKeeper.GetExchangeRate(ctx, currencyID)
		if err != nil {
			return err
		}
		converted, err := rewardtypes.CheckedQuo(total, price)
		if err != nil {
			return err
		}
		capacityStake := m.keeper.capacityPool.GetStake(ctx, types.GlobalPoolID, currencyID)
		if !capacityStake.Equal(converted) {
			return utils.FormatError("capacity pool stake does not match vault pool total", nil,
				utils.LogAttr("currency_id", currencyID),
				utils.LogAttr("capacity_stake", capacityStake),
				utils.LogAttr("converted", converted),
			)
		}
	}

	// nominator pool totals match the sum of individual nominator stakes
	for _, vault := range vaults {
		total := m.keeper.stakingKeeper.TotalCurrentStake(ctx, vault.String())
		sum := math.LegacyZeroDec()
		for _, nominator := range m.keeper.stakingKeeper.CurrentNominators(ctx, vault.String()) {
			sum = sum.Add(m.keeper.stakingKeeper.ComputeStake(ctx, vault.String(), nominator))
		}
		if !total.Equal(sum) {
			return utils.FormatError("nominator pool total does not match sum of stakes", nil,
				utils.LogAttr("vault", vault.String()),
				utils.LogAttr("total", total),
				utils.LogAttr("sum", sum),
			)
		}
	}

	// collateral accounted for by nominator stakes, liquidated collateral and
	// the liquidation vault matches the externally tracked total
	for _, currencyID := range currencies {
		accounted := m.keeper.vaultKeeper.GetLiquidationVaultCollateral(ctx, currencyID)
		for _, vault := range vaultsByCurrency[currencyID] {
			accounted = accounted.Add(m.keeper.vaultKeeper.GetLiquidatedCollateral(ctx, vault))
			for _, nominator := range m.keeper.stakingKeeper.CurrentNominators(ctx, vault.String()) {
				accounted = accounted.Add(m.keeper.stakingKeeper.ComputeStake(ctx, vault.String(), nominator))
			}
		}

		expected := m.keeper.vaultKeeper.GetTotalUserVaultCollateral(ctx, currencyID)
		diff := expected.Sub(accounted).Abs()
		if diff.GT(verifyCollateralTolerance) {
			return utils.FormatError("collateral accounting mismatch", nil,
				utils.LogAttr("currency_id", currencyID),
				utils.LogAttr("expected", expected),
				utils.LogAttr("accounted", accounted),
			)
		}
	}

	return nil
}
