package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/cataloging"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/hello",
			Method:  http.MethodGet,
			Handler: HelloHandler(),
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/categories",
			Method:  http.MethodGet,
			Handler: GetCategories(service),
		},
		{
			Path:    "/sales-report",
			Method:  http.MethodGet,
			Handler: GetSalesReport(service),
		},
		{
			Path:    "/monthly-sales",
			Method:  http.MethodGet,
			Handler: GetMonthlySales(service),
		},
		{
			Path:    "/monthly-sales/periods",
			Method:  http.MethodGet,
			Handler: GetAvailablePeriods(service),
		},
		{
			Path:    "/update-monthly-sales/:monthKey",
			Method:  http.MethodPut,
			Handler: UpdateMonthlySales(service),
		},
	}
}

func Catalog(service cataloging.Cataloger, maxUploadBytes int64) []router.Route {
	return []router.Route{
		{
			Path:    "/create-category",
			Method:  http.MethodPost,
			Handler: CreateCategory(service),
		},
		{
			Path:    "/add-product",
			Method:  http.MethodPost,
			Handler: AddProduct(service),
		},
		{
			Path:    "/products/:id",
			Method:  http.MethodPut,
			Handler: UpdateProduct(service),
		},
		{
			Path:    "/upload-csv",
			Method:  http.MethodPost,
			Handler: UploadProductsCSV(service, maxUploadBytes),
		},
	}
}

func Exports(service exporting.Exporter) []router.Route {
	return []router.Route{
		{
			Path:    "/export/:type",
			Method:  http.MethodGet,
			Handler: Export(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
