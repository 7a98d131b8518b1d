// Package modcache provides OCI-distributed bytecode module pulling,
// gzip decompression, and a sqlite-backed pull/reload history — spec.md
// §9's "how a module's bytes get onto the host filesystem" concern,
// layered in front of vm.LoadFile/LoadMemory. Grounded on the teacher's
// internal/image package (OCI pull + klauspost gzip unpack) and
// internal/registry (sqlite history), adapted from "rootfs image" to
// "single-file bytecode artifact".
package modcache

import (
	"context"
	"fmt"

	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
)

// moduleMediaType identifies an hlbridge bytecode artifact layer among
// an OCI image's layers. Layers of other media types are ignored,
// except that an image with exactly one layer has that layer used
// whatever its media type.
const moduleMediaType = "application/vnd.hlbridge.module.v1+gzip"

// PullResult is a resolved module artifact ready for decompression.
type PullResult struct {
	Layer  v1.Layer
	Digest string
}

// Pull resolves imageRef and returns the first layer tagged as an
// hlbridge module artifact, or the image's only layer when it has
// exactly one. Unlike the teacher's image.Pull, there is no
// platform selection — bytecode modules are architecture-independent.
func Pull(ctx context.Context, imageRef string) (*PullResult, error) {
	ref, err := name.ParseReference(imageRef)
	if err != nil {
		return nil, fmt.Errorf("parse module ref %q: %w", imageRef, err)
	}

	desc, err := remote.Get(ref, remote.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("pull %s: %w", imageRef, err)
	}

	img, err := desc.Image()
	if err != nil {
		return nil, fmt.Errorf("get image for %s: %w", imageRef, err)
	}

	layers, err := img.Layers()
	if err != nil {
		return nil, fmt.Errorf("get layers for %s: %w", imageRef, err)
	}

	for _, layer := range layers {
		mt, err := layer.MediaType()
		if err != nil {
			continue
		}
		if string(mt) == moduleMediaType || len(layers) == 1 {
			digest, err := layer.Digest()
			if err != nil {
				return nil, fmt.Errorf("get layer digest for %s: %w", imageRef, err)
			}
			return &PullResult{Layer: layer, Digest: digest.String()}, nil
		}
	}

	return nil, fmt.Errorf("no module layer found in %s", imageRef)
}
