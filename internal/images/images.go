// Package images maps product names to their static asset paths.
package images

// Placeholder is returned for products without a dedicated asset.
const Placeholder = "/placeholder.svg"

var productImages = map[string]string{
	"Kubernetes T-Shirt":    "/assets/kubernetes-tshirt.jpg",
	"Docker Mug":            "/assets/docker-mug.jpg",
	"Terraform Hoodie":      "/assets/terraform-hoodie.jpg",
	"CI/CD Sticker Pack":    "/assets/cicd-stickers.jpg",
	"Prometheus Poster":     "/assets/prometheus-poster.jpg",
	"Ansible Notebook":      "/assets/ansible-notebook.jpg",
	"Linux Penguin Plush":   "/assets/linux-plush.jpg",
	"Git Commit Enamel Pin": "/assets/git-pin.jpg",
}

// Resolve returns the asset path for an exact product name match, or
// Placeholder when no entry exists. It never fails.
func Resolve(name string) string {
	if path, ok := productImages[name]; ok {
		return path
	}
	return Placeholder
}
