package util

// MetricsBucketsMicroSeconds covers 128µs to 262ms, for per-transaction processing time.
var MetricsBucketsMicroSeconds = []float64{
	128e-6, 256e-6, 512e-6, 1024e-6, 2048e-6, 4096e-6, 8192e-6, 16384e-6, 32768e-6, 65536e-6, 131072e-6, 262144e-6,
}

// MetricsBucketsSize covers 128 bytes to 256KB, for serialized transaction sizes.
var MetricsBucketsSize = []float64{
	128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768, 65536, 131072, 262144,
}
