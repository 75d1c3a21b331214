package fru

import (
	"context"

	"github.com/oshokin/ipmi-fru-it/internal/config"
)

// Chassis info area keys.
const (
	KeyChassisType  = "chassis_type"
	KeyPartNumber   = "part_number"
	KeySerialNumber = "serial_number"
)

//nolint:gochecknoglobals // Fixed layout table.
var chassisDef = &infoAreaDef{
	kind:       AreaChassis,
	section:    SectionChassis,
	prefixKeys: []string{KeyChassisType},
	fields:     []string{KeyPartNumber, KeySerialNumber},
	prefix:     chassisPrefix,
}

// BuildChassis builds the chassis info area from the cia section.
func BuildChassis(ctx context.Context, store config.Store) (*Area, error) {
	return buildInfoArea(ctx, chassisDef, store)
}

func chassisPrefix(_ context.Context, store config.Store) ([]byte, error) {
	chassisType, _, err := byteValue(store, SectionChassis, KeyChassisType, 0, 0)
	if err != nil {
		return nil, err
	}

	if chassisType == 0 {
		return nil, &ConfigError{Section: SectionChassis, Key: KeyChassisType, Err: ErrIllegalChassisType}
	}

	return []byte{byte(chassisType)}, nil
}
