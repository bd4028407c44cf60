package pricing

import "github.com/ppiankov/bucketspectre/internal/objstore"

// S3 holds approximate us-east-1 storage prices per GB-month in 1/100,000 USD.
// 2300 means $0.023.
var S3 = &Table{
	Provider: "s3",
	Default:  objstore.TierStandard,
	Prices: map[objstore.Tier]int64{
		objstore.TierStandard:          2300,
		"INTELLIGENT_TIERING":          2300,
		objstore.TierStandardIA:        1250,
		objstore.TierOneZoneIA:         1000,
		objstore.TierGlacier:           400,
		"GLACIER_IR":                   400,
		objstore.TierDeepArchive:       99,
		objstore.TierReducedRedundancy: 2400,
	},
	Tracked: []objstore.Tier{
		objstore.TierStandard,
		objstore.TierStandardIA,
		objstore.TierReducedRedundancy,
	},
	Labels: map[objstore.Tier]string{
		objstore.TierStandard:          "S",
		objstore.TierStandardIA:        "IA",
		objstore.TierReducedRedundancy: "RR",
	},
}

// GCS holds approximate us multi-region storage prices per GB-month in 1/100,000 USD.
var GCS = &Table{
	Provider: "gcs",
	Default:  objstore.TierStandard,
	Prices: map[objstore.Tier]int64{
		objstore.TierStandard:          2000,
		objstore.TierNearline:          1000,
		objstore.TierColdline:          400,
		objstore.TierArchive:           120,
		"MULTI_REGIONAL":               2600,
		"REGIONAL":                     2000,
		"DURABLE_REDUCED_AVAILABILITY": 2000,
	},
	Tracked: []objstore.Tier{
		objstore.TierStandard,
		objstore.TierNearline,
		objstore.TierColdline,
	},
	Labels: map[objstore.Tier]string{
		objstore.TierStandard: "S",
		objstore.TierNearline: "NL",
		objstore.TierColdline: "CL",
	},
}

var tables = map[string]*Table{
	S3.Provider:  S3,
	GCS.Provider: GCS,
}
