// 压测入口：sbo-bench --stage a|b|c
package main

import (
	"fmt"
	"os"

	"github.com/flxai/soft-brownian-offset/bench/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "sbo-bench",
		Short:         "Soft Brownian Offset 压测",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadStageOpts(cmd, v)
			if err != nil {
				return err
			}
			log, err := logger.New("sbo-bench", opts.log)
			if err != nil {
				return err
			}
			defer log.Sync()

			stage := v.GetString("stage")
			log.Info("bench start", zap.String("stage", stage), zap.Int("workers", opts.workers))
			switch stage {
			case "a":
				err = runStageA(opts, log)
			case "b":
				err = runStageB(opts, log)
			case "c":
				err = runStageC(opts, log)
			default:
				return errors.Errorf("请指定 --stage a|b|c，当前为 %q", stage)
			}
			if err != nil {
				return err
			}
			fmt.Println("压测完成")
			return nil
		},
	}

	f := cmd.Flags()
	f.String("stage", "", "压测阶段: a(softness 扫描) | b(维度扩展) | c(并行 worker 扩展)")
	f.String("config", "", "配置文件路径，默认读取当前目录的 sbo_config.yaml")
	f.Float64("d-min", 0.3, "OOD 样本与 ID 点云的最小距离阈值")
	f.Float64("d-off", 0.2, "每步偏移的尺度")
	f.Int("samples", 256, "每轮生成的 OOD 样本数")
	f.String("softness", "false", "软阈值：false 为硬阈值，true 等同于 1，正数为陡峭度（仅 stage b/c 生效）")
	f.Int64("seed", 42, "随机种子")
	f.Int("max-iterations", 0, "单个样本的最大步数，0 使用默认值，负数不限制")
	f.Int("workers", 1, "并行 worker 数（stage c 会覆盖为扫描列表）")
	f.String("report-dir", "", "报告输出目录，默认 report")
	f.Bool("progress", false, "输出进度")
	f.String("log-level", "info", "日志级别 debug|info|warn|error")
	f.String("log-path", "", "日志文件前缀，空则只输出到控制台")
	return cmd
}
