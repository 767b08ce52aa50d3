package net

import (
	"fmt"

	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/layer"
)

// bindParams assigns each learnable parameter blob its display name and
// appends it, shared, to the network-wide flat parameter list. The blob at
// n.paramIDs[layerIdx][k] is the same object as the layer's k-th parameter.
func (n *Net) bindParams(layerIdx int, d *config.LayerDesc, l layer.Layer) {
	for k, p := range l.Params() {
		name := ""
		if k < len(d.ParamNames) {
			name = d.ParamNames[k]
		}
		if name == "" {
			name = fmt.Sprintf("%s_param_%d", d.Name, k)
		}
		n.paramIDs[layerIdx] = append(n.paramIDs[layerIdx], len(n.params))
		n.params = append(n.params, p)
		n.paramNames = append(n.paramNames, name)
	}
}
