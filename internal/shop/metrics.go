package shop

import "github.com/prometheus/client_golang/prometheus"

const labelAction = "action"

type Metrics struct {
	Actions   *prometheus.CounterVec
	LineItems prometheus.Gauge
	Units     prometheus.Gauge
	Total     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shop_actions_total",
				Help: "Shop actions applied, by action",
			},
			[]string{labelAction},
		),
		LineItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shop_cart_line_items",
			Help: "Distinct products in the cart",
		}),
		Units: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shop_cart_units",
			Help: "Sum of cart quantities",
		}),
		Total: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shop_cart_total",
			Help: "Cart total in currency units",
		}),
	}

	reg.MustRegister(m.Actions, m.LineItems, m.Units, m.Total)
	return m
}

func (m *Metrics) observeAction(a Action) {
	if m == nil {
		return
	}
	m.Actions.WithLabelValues(ActionName(a)).Inc()
}

func (m *Metrics) observeState(s State) {
	if m == nil {
		return
	}
	m.LineItems.Set(float64(len(s.Cart)))
	m.Units.Set(float64(s.Cart.Units()))
	m.Total.Set(s.Cart.Total().Float64())
}
