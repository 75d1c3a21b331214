package fru

import (
	"context"

	"github.com/oshokin/ipmi-fru-it/internal/config"
)

// Product-only info area keys.
const (
	KeyVersion  = "version"
	KeyAssetTag = "asset_tag"
)

//nolint:gochecknoglobals // Fixed layout table.
var productDef = &infoAreaDef{
	kind:       AreaProduct,
	section:    SectionProduct,
	prefixKeys: []string{KeyLanguageCode},
	fields: []string{
		KeyManufacturer,
		KeyProductName,
		KeyPartNumber,
		KeyVersion,
		KeySerialNumber,
		KeyAssetTag,
		KeyFRUFileID,
	},
	prefix: productPrefix,
}

// BuildProduct builds the product info area from the pia section.
func BuildProduct(ctx context.Context, store config.Store) (*Area, error) {
	return buildInfoArea(ctx, productDef, store)
}

func productPrefix(ctx context.Context, store config.Store) ([]byte, error) {
	lang, err := languageCode(ctx, store, SectionProduct)
	if err != nil {
		return nil, err
	}

	return []byte{lang}, nil
}
