package geometry

import "math"

// CartToSpherical converts a Cartesian point to radius, latitude and
// longitude. Latitude is measured from the equatorial plane, so
// lat = +pi/2 at the north pole. A zero radius yields NaN angles, which
// propagate to the caller rather than being trapped.
func CartToSpherical(x, y, z float64) (r, lat, lon float64) {
	r = math.Sqrt(x*x + y*y + z*z)
	lat = math.Asin(z / r)
	lon = math.Atan2(y, x)
	return
}

// SphericalToCart is the inverse of CartToSpherical.
func SphericalToCart(r, lat, lon float64) (x, y, z float64) {
	x = r * math.Cos(lat) * math.Cos(lon)
	y = r * math.Cos(lat) * math.Sin(lon)
	z = r * math.Sin(lat)
	return
}

// WrapAngle folds an angle difference into [-pi, pi).
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
