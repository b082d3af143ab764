package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesapi/salesclient"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

func main() {
	var edits editList

	categoryFlag := flag.String("category", "", "filtra o relatório pelo ID da categoria")
	listCategories := flag.Bool("categories", false, "lista as categorias e sai")
	exportType := flag.String("export", "", "exporta products ou sales em CSV")
	output := flag.String("o", "", "arquivo de saída da exportação (padrão: <tipo>_export.csv)")
	showMeta := flag.Bool("meta", false, "exibe os totais do relatório em JSON")
	flag.Var(&edits, "edit", "edita um mês: YYYY-MM=QTD@PRECO (pode ser repetida)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)

	ctx := context.Background()
	client := salesclient.NewClient(cfg.Dashboard, salesclient.WithLocation(cfg.App.Location()))

	if *exportType != "" {
		if err := runExport(ctx, client, domain.ExportType(*exportType), *output); err != nil {
			fail(err)
		}
		return
	}

	service, err := dashboard.NewServiceFromConfig(client, cfg.Dashboard, cfg.App.Location())
	if err != nil {
		fail(err)
	}

	if *listCategories {
		categories, err := service.Categories(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Println(utils.PrettyJson(categories))
		return
	}

	var categoryID *int64
	if *categoryFlag != "" {
		id, err := strconv.ParseInt(*categoryFlag, 10, 64)
		if err != nil {
			fail(fmt.Errorf("categoria inválida %q", *categoryFlag))
		}
		categoryID = &id
	}

	if err := service.Load(ctx, categoryID); err != nil {
		fail(err)
	}

	for _, edit := range edits {
		if err := applyEdit(ctx, service, edit); err != nil {
			fail(err)
		}
	}

	if *showMeta {
		fmt.Println(utils.PrettyJson(service.Meta()))
	}

	if service.Empty() {
		fmt.Println("Nenhuma venda encontrada para o filtro selecionado")
		return
	}

	printAggregates(os.Stdout, service.Board().Aggregates())
}

func applyEdit(ctx context.Context, service *dashboard.Service, edit monthEdit) error {
	board := service.Board()

	if _, err := board.StartEdit(edit.Key); err != nil {
		return fmt.Errorf("%s: %w", edit.Key, err)
	}
	if err := board.SetDraftQuantity(edit.Key, edit.Quantity); err != nil {
		_ = board.Cancel(edit.Key)
		return fmt.Errorf("%s: %w", edit.Key, err)
	}
	if edit.UnitPrice != nil {
		if err := board.SetDraftUnitPrice(edit.Key, *edit.UnitPrice); err != nil {
			_ = board.Cancel(edit.Key)
			return fmt.Errorf("%s: %w", edit.Key, err)
		}
	}

	updated, err := service.Save(ctx, edit.Key)
	if err != nil {
		_ = board.Cancel(edit.Key)
		return fmt.Errorf("%s: %s", edit.Key, salesclient.Message(err))
	}

	logrus.WithFields(logrus.Fields{
		"month":    edit.Key,
		"quantity": updated.Quantity,
		"revenue":  updated.TotalRevenue,
	}).Info("Mês atualizado")

	return nil
}

func runExport(ctx context.Context, client salesclient.Client, exportType domain.ExportType, output string) error {
	if !exportType.Valid() {
		return fmt.Errorf("tipo de exportação inválido %q, use products ou sales", exportType)
	}
	if output == "" {
		output = fmt.Sprintf("%s_export.csv", exportType)
	}

	file, err := os.Create(output)
	if err != nil {
		return err
	}

	if err := client.Export(ctx, exportType, file); err != nil {
		file.Close()
		_ = os.Remove(output)
		return err
	}

	if err := file.Close(); err != nil {
		return err
	}

	logrus.WithField("file", output).Info("Exportação concluída")
	return nil
}

func printAggregates(w io.Writer, aggregates []domain.MonthlyAggregate) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Mês\tChave\tQuantidade\tReceita\tLucro\tVendas\t")
	for _, a := range aggregates {
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.2f\t%.2f\t%d\t\n",
			a.Label, a.Key, a.Quantity, a.TotalRevenue, a.TotalProfit, a.RecordCount)
	}
	_ = tw.Flush()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "erro:", salesclient.Message(err))
	os.Exit(1)
}
